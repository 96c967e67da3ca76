package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/models"
)

type createSurveyReq struct {
	Title       string  `json:"title"       binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	CourtIDs    []uint  `json:"court_ids"`
}

// nullable: chuỗi rỗng lưu NULL
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// assignCourts ghi các dòng court_survey; court không tồn tại -> ErrForeignKeyViolated.
func assignCourts(tx *gorm.DB, surveyID uint, courtIDs []uint) error {
	ids := uniqueIDs(courtIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.CourtSurvey, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.CourtSurvey{CourtID: id, SurveyID: surveyID})
	}
	return tx.Create(&rows).Error
}

// loadSurveyDetail nạp survey kèm câu hỏi, phương án và toà án.
func loadSurveyDetail(db *gorm.DB, id uint) (models.Survey, error) {
	var s models.Survey
	err := db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Questions.AnswerOptions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Courts", func(db *gorm.DB) *gorm.DB { return db.Order("court.name ASC, court.id ASC") }).
		First(&s, id).Error
	return s, err
}

func CreateSurvey(c *gin.Context) {
	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "title", &req.Title) {
		return
	}

	s := models.Survey{
		Title:       req.Title,
		Description: nullable(req.Description),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		return assignCourts(tx, s.ID, req.CourtIDs)
	})
	if err != nil {
		respondDBError(c, err, "Không thể tạo khảo sát")
		return
	}

	detail, err := loadSurveyDetail(config.DB, s.ID)
	if err != nil {
		respondDBError(c, err, "Không thể đọc khảo sát")
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func ListSurveys(c *gin.Context) {
	var surveys []models.Survey
	if err := config.DB.Order("created_at DESC, id DESC").Find(&surveys).Error; err != nil {
		respondDBError(c, err, "Không thể lấy danh sách khảo sát")
		return
	}
	c.JSON(http.StatusOK, surveys)
}

func GetSurveyDetail(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	detail, err := loadSurveyDetail(config.DB, s.ID)
	if err != nil {
		respondDBError(c, err, "Không thể lấy khảo sát")
		return
	}
	c.JSON(http.StatusOK, detail)
}

type updateSurveyReq struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// UpdateSurvey cập nhật tiêu đề/mô tả; updated_at được gorm làm mới.
func UpdateSurvey(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req updateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "title", req.Title) {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = nullable(req.Description)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&s).Updates(updates).Error; err != nil {
		respondDBError(c, err, "Cập nhật thất bại")
		return
	}

	detail, err := loadSurveyDetail(config.DB, s.ID)
	if err != nil {
		respondDBError(c, err, "Không thể đọc khảo sát")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteSurvey xoá survey; câu hỏi, phương án, court_survey và phản hồi bị xoá theo.
func DeleteSurvey(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	if err := config.DB.Delete(&s).Error; err != nil {
		respondDBError(c, err, "Xoá thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type surveyCourtsReq struct {
	CourtIDs []uint `json:"court_ids"`
}

// ReplaceSurveyCourts thay toàn bộ danh sách toà án được gán.
func ReplaceSurveyCourts(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req surveyCourtsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", s.ID).Delete(&models.CourtSurvey{}).Error; err != nil {
			return err
		}
		return assignCourts(tx, s.ID, req.CourtIDs)
	})
	if err != nil {
		respondDBError(c, err, "Không thể gán toà án")
		return
	}

	detail, err := loadSurveyDetail(config.DB, s.ID)
	if err != nil {
		respondDBError(c, err, "Không thể đọc khảo sát")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func AttachCourt(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	courtID, ok := middleware.ParseID(c, "court_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "court_id không hợp lệ"})
		return
	}

	link := models.CourtSurvey{CourtID: courtID, SurveyID: s.ID}
	if err := config.DB.Create(&link).Error; err != nil {
		respondDBError(c, err, "Không thể gán toà án")
		return
	}
	c.JSON(http.StatusCreated, link)
}

func DetachCourt(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	courtID, ok := middleware.ParseID(c, "court_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "court_id không hợp lệ"})
		return
	}

	res := config.DB.Where("court_id = ? AND survey_id = ?", courtID, s.ID).Delete(&models.CourtSurvey{})
	if res.Error != nil {
		respondDBError(c, res.Error, "Không thể bỏ gán toà án")
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Toà án chưa được gán cho khảo sát"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "detached"})
}
