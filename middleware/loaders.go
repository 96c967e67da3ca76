package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/models"
)

const (
	CtxCourt    = "courtObj"    // court đã nạp sẵn
	CtxSurvey   = "surveyObj"   // survey đã nạp sẵn
	CtxQuestion = "questionObj" // question đã nạp sẵn
	CtxOption   = "optionObj"   // answer option đã nạp sẵn
	CtxResponse = "responseObj" // survey response đã nạp sẵn
)

// ParseID đọc tham số đường dẫn là số nguyên dương.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// load nạp bản ghi theo :id vào dest; tự abort nếu lỗi.
func load(c *gin.Context, dest interface{}, entity string) bool {
	id, ok := ParseID(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return false
	}

	if err := config.DB.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": entity + " không tồn tại"})
			return false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc " + entity})
		return false
	}
	return true
}

func LoadCourt() gin.HandlerFunc {
	return func(c *gin.Context) {
		var court models.Court
		if !load(c, &court, "Toà án") {
			return
		}
		c.Set(CtxCourt, court)
		c.Next()
	}
}

func LoadSurvey() gin.HandlerFunc {
	return func(c *gin.Context) {
		var s models.Survey
		if !load(c, &s, "Khảo sát") {
			return
		}
		c.Set(CtxSurvey, s)
		c.Next()
	}
}

func LoadQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.Question
		if !load(c, &q, "Câu hỏi") {
			return
		}
		c.Set(CtxQuestion, q)
		c.Next()
	}
}

func LoadAnswerOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		var o models.AnswerOption
		if !load(c, &o, "Phương án trả lời") {
			return
		}
		c.Set(CtxOption, o)
		c.Next()
	}
}

func LoadResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		var r models.SurveyResponse
		if !load(c, &r, "Phản hồi") {
			return
		}
		c.Set(CtxResponse, r)
		c.Next()
	}
}
