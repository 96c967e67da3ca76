package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/logger"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/models"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var exportHeader = []string{"response_id", "created_at", "court", "kbju_code", "question_id", "question", "selected_option", "custom_answer"}

type ExportRequest struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// runExport chạy job; test thay bằng bản đồng bộ.
var runExport = func(jobID string) { go processExportJob(jobID) }

func parseRange(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, err
	}
	// created_at lưu theo UTC; sqlite so sánh dạng chuỗi
	t = t.UTC()
	return &t, nil
}

// POST /api/surveys/:id/export
func CreateExport(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.Format == "" {
		req.Format = FormatCSV
	}
	if req.Format != FormatCSV && req.Format != FormatXLSX {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "format phải là csv hoặc xlsx"})
		return
	}

	from, err := parseRange(req.RangeFrom)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "range_from không hợp lệ (RFC3339)"})
		return
	}
	to, err := parseRange(req.RangeTo)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "range_to không hợp lệ (RFC3339)"})
		return
	}

	job := models.ExportJob{
		JobID:     uuid.New().String(),
		SurveyID:  s.ID,
		Format:    req.Format,
		RangeFrom: from,
		RangeTo:   to,
		Status:    models.ExportQueued,
	}
	if err := config.DB.Create(&job).Error; err != nil {
		respondDBError(c, err, "Không thể tạo job xuất dữ liệu")
		return
	}

	runExport(job.JobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": models.ExportQueued,
	})
}

// GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", c.Param("job_id")).Error; err != nil {
		respondDBError(c, err, "Job không tìm thấy")
		return
	}

	if job.Status == models.ExportDone && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, filepath.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

// setExportStatus ghi trạng thái job; lỗi được log.
func setExportStatus(job *models.ExportJob, updates map[string]interface{}) {
	if err := config.DB.Model(job).Updates(updates).Error; err != nil {
		logger.Errorf("export job %s: update %v: %v", job.JobID, updates, err)
	}
}

func failExport(job *models.ExportJob, err error) {
	logger.WithError(err).WithField("job_id", job.JobID).Error("export failed")
	setExportStatus(job, map[string]interface{}{"status": models.ExportFailed, "error_msg": err.Error()})
}

// exportRows đọc các câu trả lời của survey, mỗi QuestionResponse một dòng.
func exportRows(job models.ExportJob) ([][]string, error) {
	q := config.DB.
		Preload("Court").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption").
		Where("survey_id = ?", job.SurveyID)
	if job.RangeFrom != nil {
		q = q.Where("created_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("created_at <= ?", job.RangeTo)
	}

	var responses []models.SurveyResponse
	if err := q.Order("id ASC").Find(&responses).Error; err != nil {
		return nil, err
	}

	var rows [][]string
	for _, r := range responses {
		courtName, code := "", ""
		if r.Court != nil {
			courtName, code = r.Court.Name, r.Court.KbjuCode
		}
		for _, a := range r.Answers {
			question, option := "", ""
			if a.Question != nil {
				question = a.Question.Text
			}
			if a.SelectedOption != nil {
				option = a.SelectedOption.Text
			}
			rows = append(rows, []string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.CreatedAt.Format(time.RFC3339),
				courtName,
				code,
				strconv.FormatUint(uint64(a.QuestionID), 10),
				question,
				option,
				a.CustomAnswer,
			})
		}
	}
	return rows, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	write := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(values))
		for i, v := range values {
			vals[i] = v
		}
		return f.SetSheetRow(sheet, cell, &vals)
	}

	if err := write(1, exportHeader); err != nil {
		return err
	}
	for i, r := range rows {
		if err := write(i+2, r); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// xử lý job xuất dữ liệu
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		logger.WithError(err).WithField("job_id", jobID).Error("export job not found")
		return
	}
	setExportStatus(&job, map[string]interface{}{"status": models.ExportProcessing})

	outDir := config.Cfg.ExportDir
	if outDir == "" {
		outDir = "exports"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		failExport(&job, err)
		return
	}

	rows, err := exportRows(job)
	if err != nil {
		failExport(&job, err)
		return
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("survey_%d_%s.%s", job.SurveyID, job.JobID, job.Format))
	if job.Format == FormatXLSX {
		err = writeXLSX(outPath, rows)
	} else {
		err = writeCSV(outPath, rows)
	}
	if err != nil {
		failExport(&job, err)
		return
	}

	logger.Debugf("export job %s: %d rows -> %s", job.JobID, len(rows), outPath)
	setExportStatus(&job, map[string]interface{}{"status": models.ExportDone, "file_path": outPath})
}
