package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/logger"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/models"
	"github.com/vnkhanh/court-survey/utils"
)

// Storage lưu ảnh QR; main gán LocalStorage hoặc SupabaseStorage.
var Storage utils.FileStorage

type createCourtReq struct {
	Name     string `json:"name"      binding:"required,min=1,max=100"`
	KbjuCode string `json:"kbju_code" binding:"required,min=1,max=20,excludesall=/"`
}

// withQRURL điền link công khai của ảnh QR.
func withQRURL(court *models.Court) {
	if court.QRCode != nil && Storage != nil {
		court.QRCodeURL = Storage.URL(*court.QRCode)
	}
}

func CreateCourt(c *gin.Context) {
	var req createCourtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "name", &req.Name) || !trimRequired(c, "kbju_code", &req.KbjuCode) {
		return
	}

	court := models.Court{Name: req.Name, KbjuCode: req.KbjuCode}
	if err := config.DB.Create(&court).Error; err != nil {
		respondDBError(c, err, "Không thể tạo toà án")
		return
	}
	c.JSON(http.StatusCreated, court)
}

func ListCourts(c *gin.Context) {
	var courts []models.Court
	if err := config.DB.Order("name ASC, id ASC").Find(&courts).Error; err != nil {
		respondDBError(c, err, "Không thể lấy danh sách toà án")
		return
	}
	c.JSON(http.StatusOK, courts)
}

func GetCourt(c *gin.Context) {
	court := c.MustGet(middleware.CtxCourt).(models.Court)

	if err := config.DB.Model(&court).Order("survey.id ASC").Association("Surveys").Find(&court.Surveys); err != nil {
		respondDBError(c, err, "Không thể lấy khảo sát của toà án")
		return
	}
	withQRURL(&court)
	c.JSON(http.StatusOK, court)
}

type updateCourtReq struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=100"`
	KbjuCode *string `json:"kbju_code" binding:"omitempty,min=1,max=20,excludesall=/"`
}

func UpdateCourt(c *gin.Context) {
	court := c.MustGet(middleware.CtxCourt).(models.Court)

	var req updateCourtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !trimRequired(c, "name", req.Name) || !trimRequired(c, "kbju_code", req.KbjuCode) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.KbjuCode != nil {
		updates["kbju_code"] = *req.KbjuCode
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&court).Updates(updates).Error; err != nil {
		respondDBError(c, err, "Cập nhật thất bại")
		return
	}
	if err := config.DB.First(&court, court.ID).Error; err != nil {
		respondDBError(c, err, "Không thể đọc toà án")
		return
	}
	withQRURL(&court)
	c.JSON(http.StatusOK, court)
}

// DeleteCourt xoá toà án; court_survey và survey_response bị xoá theo (ON DELETE CASCADE).
func DeleteCourt(c *gin.Context) {
	court := c.MustGet(middleware.CtxCourt).(models.Court)

	if err := config.DB.Delete(&court).Error; err != nil {
		respondDBError(c, err, "Xoá thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// GenerateCourtQR tạo ảnh QR, lưu vào storage và ghi đường dẫn vào court.qr_code.
func GenerateCourtQR(c *gin.Context) {
	court := c.MustGet(middleware.CtxCourt).(models.Court)

	png, err := utils.GenerateQRCode(config.Cfg.PublicBaseURL, court.KbjuCode)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Không thể tạo mã QR", "error": err.Error()})
		return
	}

	if Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Chưa cấu hình storage"})
		return
	}
	path, err := Storage.Save(utils.QRCodePath(court.KbjuCode), png, "image/png")
	if err != nil {
		logger.WithError(err).WithField("kbju_code", court.KbjuCode).Error("save qr code")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Không thể lưu mã QR"})
		return
	}

	if err := config.DB.Model(&court).Update("qr_code", path).Error; err != nil {
		respondDBError(c, err, "Không thể cập nhật mã QR")
		return
	}
	court.QRCode = &path
	withQRURL(&court)
	c.JSON(http.StatusOK, court)
}

// GetCourtQRImage trả ảnh PNG sinh trực tiếp, không cần storage.
func GetCourtQRImage(c *gin.Context) {
	court := c.MustGet(middleware.CtxCourt).(models.Court)

	png, err := utils.GenerateQRCode(config.Cfg.PublicBaseURL, court.KbjuCode)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Không thể tạo mã QR", "error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetSurveyPage là đích của link trong mã QR: ?kbju_code=...
func GetSurveyPage(c *gin.Context) {
	code := strings.TrimSpace(c.Query("kbju_code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu kbju_code"})
		return
	}

	var court models.Court
	err := config.DB.
		Preload("Surveys", func(db *gorm.DB) *gorm.DB { return db.Order("survey.created_at DESC, survey.id DESC") }).
		Preload("Surveys.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Surveys.Questions.AnswerOptions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("kbju_code = ?", code).
		First(&court).Error
	if err != nil {
		respondDBError(c, err, "Toà án không tồn tại")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"court":   gin.H{"id": court.ID, "name": court.Name, "kbju_code": court.KbjuCode},
		"surveys": court.Surveys,
	})
}
