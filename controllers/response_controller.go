package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/logger"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/models"
)

type answerReq struct {
	QuestionID       uint    `json:"question_id"        binding:"required"`
	SelectedOptionID *uint   `json:"selected_option_id" binding:"required"`
	CustomAnswer     *string `json:"custom_answer"      binding:"required,max=255"`
}

type submitResponseReq struct {
	KbjuCode string      `json:"kbju_code"`
	CourtID  uint        `json:"court_id"`
	Answers  []answerReq `json:"answers" binding:"required,min=1,dive"`
}

// errInvalidAnswer: câu trả lời không khớp câu hỏi/phương án của survey.
var errInvalidAnswer = errors.New("invalid answer")

func findCourt(req submitResponseReq) (models.Court, error) {
	var court models.Court
	q := config.DB
	if req.CourtID != 0 {
		q = q.Where("id = ?", req.CourtID)
	} else {
		q = q.Where("kbju_code = ?", strings.TrimSpace(req.KbjuCode))
	}
	err := q.First(&court).Error
	return court, err
}

// validateAnswers kiểm tra câu hỏi thuộc survey và phương án thuộc câu hỏi.
// Schema không ràng buộc điều này nên phải kiểm tra ở đây.
func validateAnswers(surveyID uint, answers []answerReq) error {
	var questions []models.Question
	if err := config.DB.Preload("AnswerOptions").Where("survey_id = ?", surveyID).Find(&questions).Error; err != nil {
		return err
	}

	options := make(map[uint]map[uint]bool, len(questions))
	for _, q := range questions {
		set := make(map[uint]bool, len(q.AnswerOptions))
		for _, o := range q.AnswerOptions {
			set[o.ID] = true
		}
		options[q.ID] = set
	}

	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		set, ok := options[a.QuestionID]
		if !ok {
			return fmt.Errorf("%w: câu hỏi %d không thuộc khảo sát", errInvalidAnswer, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return fmt.Errorf("%w: câu hỏi %d bị trả lời nhiều lần", errInvalidAnswer, a.QuestionID)
		}
		answered[a.QuestionID] = true
		if !set[*a.SelectedOptionID] {
			return fmt.Errorf("%w: phương án %d không thuộc câu hỏi %d", errInvalidAnswer, *a.SelectedOptionID, a.QuestionID)
		}
	}
	return nil
}

// SubmitResponse ghi một lượt trả lời khảo sát của toà án (một transaction).
func SubmitResponse(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.CourtID == 0 && strings.TrimSpace(req.KbjuCode) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Thiếu court_id hoặc kbju_code"})
		return
	}

	court, err := findCourt(req)
	if err != nil {
		respondDBError(c, err, "Toà án không tồn tại")
		return
	}

	var assigned int64
	if err := config.DB.Model(&models.CourtSurvey{}).
		Where("court_id = ? AND survey_id = ?", court.ID, s.ID).
		Count(&assigned).Error; err != nil {
		respondDBError(c, err, "Không thể kiểm tra toà án")
		return
	}
	if assigned == 0 {
		c.JSON(http.StatusForbidden, gin.H{"message": "Khảo sát không được gán cho toà án này"})
		return
	}

	if err := validateAnswers(s.ID, req.Answers); err != nil {
		if errors.Is(err, errInvalidAnswer) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Câu trả lời không hợp lệ", "error": err.Error()})
			return
		}
		respondDBError(c, err, "Không thể kiểm tra câu trả lời")
		return
	}

	resp := models.SurveyResponse{SurveyID: s.ID, CourtID: court.ID}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers").Create(&resp).Error; err != nil {
			return err
		}

		answers := make([]models.QuestionResponse, 0, len(req.Answers))
		for _, a := range req.Answers {
			answers = append(answers, models.QuestionResponse{
				SurveyResponseID: resp.ID,
				QuestionID:       a.QuestionID,
				SelectedOptionID: *a.SelectedOptionID,
				CustomAnswer:     strings.TrimSpace(*a.CustomAnswer),
			})
		}
		if err := tx.Create(&answers).Error; err != nil {
			return fmt.Errorf("lưu câu trả lời: %w", err)
		}
		resp.Answers = answers
		return nil
	})
	if err != nil {
		respondDBError(c, err, "Không thể lưu phản hồi")
		return
	}

	logger.WithField("survey_id", s.ID).WithField("kbju_code", court.KbjuCode).Info("survey response submitted")
	c.JSON(http.StatusCreated, resp)
}

// GET /api/surveys/:id/responses?page=1&limit=10&start_date=2025-09-01&end_date=2025-09-21
func ListResponses(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := config.DB.Model(&models.SurveyResponse{}).Where("survey_id = ?", s.ID)

	if v := c.Query("start_date"); v != "" {
		startDate, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "start_date không hợp lệ (YYYY-MM-DD)"})
			return
		}
		query = query.Where("created_at >= ?", startDate)
	}
	if v := c.Query("end_date"); v != "" {
		endDate, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "end_date không hợp lệ (YYYY-MM-DD)"})
			return
		}
		// endDate + 1 ngày để lấy trọn ngày cuối
		query = query.Where("created_at < ?", endDate.Add(24*time.Hour))
	}

	// Session để dùng lại query cho cả Count và Find
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Không thể đếm phản hồi")
		return
	}

	var items []models.SurveyResponse
	if err := query.Preload("Court").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		respondDBError(c, err, "Không thể lấy phản hồi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"items": items,
	})
}

func GetResponseDetail(c *gin.Context) {
	r := c.MustGet(middleware.CtxResponse).(models.SurveyResponse)

	err := config.DB.
		Preload("Court").
		Preload("Survey").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption").
		First(&r, r.ID).Error
	if err != nil {
		respondDBError(c, err, "Không thể lấy phản hồi")
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteResponse xoá một lượt trả lời cùng các câu trả lời con.
func DeleteResponse(c *gin.Context) {
	r := c.MustGet(middleware.CtxResponse).(models.SurveyResponse)

	if err := config.DB.Delete(&r).Error; err != nil {
		respondDBError(c, err, "Xoá thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type optionCount struct {
	OptionID uint   `json:"option_id"`
	Text     string `json:"text"`
	Count    int64  `json:"count"`
}

type questionSummary struct {
	QuestionID uint          `json:"question_id"`
	Text       string        `json:"text"`
	Answers    int64         `json:"answers"`
	Options    []optionCount `json:"options"`
}

// GetSurveySummary thống kê số phản hồi và số lần chọn từng phương án.
func GetSurveySummary(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var responses int64
	if err := config.DB.Model(&models.SurveyResponse{}).Where("survey_id = ?", s.ID).Count(&responses).Error; err != nil {
		respondDBError(c, err, "Không thể đếm phản hồi")
		return
	}

	var questions []models.Question
	if err := config.DB.
		Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("survey_id = ?", s.ID).Order("id ASC").
		Find(&questions).Error; err != nil {
		respondDBError(c, err, "Không thể lấy câu hỏi")
		return
	}

	// chỉ đếm câu trả lời mà câu hỏi thuộc đúng survey của lượt trả lời
	var rows []struct {
		QuestionID       uint
		SelectedOptionID uint
		Total            int64
	}
	if err := config.DB.Model(&models.QuestionResponse{}).
		Select("question_response.question_id, question_response.selected_option_id, COUNT(*) AS total").
		Joins("JOIN survey_response ON survey_response.id = question_response.survey_response_id").
		Joins("JOIN question ON question.id = question_response.question_id AND question.survey_id = survey_response.survey_id").
		Where("survey_response.survey_id = ?", s.ID).
		Group("question_response.question_id, question_response.selected_option_id").
		Scan(&rows).Error; err != nil {
		respondDBError(c, err, "Không thể thống kê câu trả lời")
		return
	}

	counts := make(map[uint]map[uint]int64)
	for _, r := range rows {
		if counts[r.QuestionID] == nil {
			counts[r.QuestionID] = make(map[uint]int64)
		}
		counts[r.QuestionID][r.SelectedOptionID] += r.Total
	}

	summary := make([]questionSummary, 0, len(questions))
	for _, q := range questions {
		qs := questionSummary{QuestionID: q.ID, Text: q.Text, Options: make([]optionCount, 0, len(q.AnswerOptions))}
		for _, o := range q.AnswerOptions {
			n := counts[q.ID][o.ID]
			qs.Answers += n
			qs.Options = append(qs.Options, optionCount{OptionID: o.ID, Text: o.Text, Count: n})
		}
		summary = append(summary, qs)
	}

	c.JSON(http.StatusOK, gin.H{
		"survey_id": s.ID,
		"title":     s.Title,
		"responses": responses,
		"questions": summary,
	})
}
