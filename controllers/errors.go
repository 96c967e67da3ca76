package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/logger"
)

// dbStatus ánh xạ lỗi tầng lưu trữ sang HTTP status.
func dbStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondDBError trả lỗi DB cho client; lỗi không xác định được ghi log.
func respondDBError(c *gin.Context, err error, message string) {
	status := dbStatus(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.FullPath()).Error(message)
		c.JSON(status, gin.H{"message": message})
		return
	}
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}

// trimRequired cắt khoảng trắng tại chỗ; chuỗi rỗng sau khi cắt trả 422.
func trimRequired(c *gin.Context, field string, values ...*string) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		*v = strings.TrimSpace(*v)
		if *v == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": field + " không được để trống"})
			return false
		}
	}
	return true
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
}
