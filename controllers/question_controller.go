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

type addQuestionReq struct {
	Text           string   `json:"text" binding:"required,min=1"`
	HasOtherOption bool     `json:"has_other_option"`
	Options        []string `json:"options"` // tạo kèm các phương án "khác"
}

func AddQuestion(c *gin.Context) {
	s := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req addQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "text", &req.Text) {
		return
	}

	q := models.Question{
		SurveyID:       s.ID,
		Text:           req.Text,
		HasOtherOption: req.HasOtherOption,
	}
	for _, text := range req.Options {
		if text = strings.TrimSpace(text); text != "" {
			q.AnswerOptions = append(q.AnswerOptions, models.AnswerOption{Text: text})
		}
	}

	// gorm tạo kèm AnswerOptions trong cùng transaction
	if err := config.DB.Create(&q).Error; err != nil {
		respondDBError(c, err, "Không thể thêm câu hỏi")
		return
	}
	c.JSON(http.StatusCreated, q)
}

type updateQuestionReq struct {
	Text           *string `json:"text" binding:"omitempty,min=1"`
	HasOtherOption *bool   `json:"has_other_option"`
}

func UpdateQuestion(c *gin.Context) {
	q := c.MustGet(middleware.CtxQuestion).(models.Question)

	var req updateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "text", req.Text) {
		return
	}

	updates := map[string]interface{}{}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.HasOtherOption != nil {
		updates["has_other_option"] = *req.HasOtherOption
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&q).Updates(updates).Error; err != nil {
		respondDBError(c, err, "Cập nhật thất bại")
		return
	}
	if err := config.DB.Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).First(&q, q.ID).Error; err != nil {
		respondDBError(c, err, "Không thể đọc câu hỏi")
		return
	}
	c.JSON(http.StatusOK, q)
}

// DeleteQuestion xoá câu hỏi; phương án và câu trả lời liên quan bị xoá theo.
func DeleteQuestion(c *gin.Context) {
	q := c.MustGet(middleware.CtxQuestion).(models.Question)

	if err := config.DB.Delete(&q).Error; err != nil {
		respondDBError(c, err, "Xoá thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type addOptionReq struct {
	Text string `json:"text" binding:"required,min=1"`
}

func AddAnswerOption(c *gin.Context) {
	q := c.MustGet(middleware.CtxQuestion).(models.Question)

	var req addOptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "text", &req.Text) {
		return
	}

	o := models.AnswerOption{QuestionID: q.ID, Text: req.Text}
	if err := config.DB.Create(&o).Error; err != nil {
		respondDBError(c, err, "Không thể thêm phương án")
		return
	}
	c.JSON(http.StatusCreated, o)
}

// DeleteAnswerOption xoá phương án; các câu trả lời đã chọn nó bị xoá theo.
func DeleteAnswerOption(c *gin.Context) {
	o := c.MustGet(middleware.CtxOption).(models.AnswerOption)

	if err := config.DB.Delete(&o).Error; err != nil {
		respondDBError(c, err, "Xoá thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
