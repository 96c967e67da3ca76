// Package testutil mở cơ sở dữ liệu SQLite in-memory cho test.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/config"
	"github.com/vnkhanh/court-survey/models"
)

// OpenSQLite mở một database in-memory riêng cho mỗi test, chưa có bảng nào.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.Open(sqlite.Open(config.SQLiteDSN(":memory:")), false)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// mỗi kết nối in-memory là một database khác nhau
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// SetupTestDB tạo database có đủ schema (AutoMigrate) và gán vào config.DB.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenSQLite(t)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return db
}

// SetupGin chuyển gin sang test mode.
func SetupGin(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
}

// SeedSurvey tạo một survey có các câu hỏi, mỗi câu hỏi một phương án "khác".
func SeedSurvey(t *testing.T, db *gorm.DB, title string, questions ...string) models.Survey {
	t.Helper()

	s := models.Survey{Title: title}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}
	for _, text := range questions {
		q := models.Question{SurveyID: s.ID, Text: text, HasOtherOption: true}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		o := models.AnswerOption{QuestionID: q.ID, Text: "Khác"}
		if err := db.Create(&o).Error; err != nil {
			t.Fatalf("create answer option: %v", err)
		}
		q.AnswerOptions = []models.AnswerOption{o}
		s.Questions = append(s.Questions, q)
	}
	return s
}

// SeedCourt tạo một toà án và (tuỳ chọn) gán vào các survey.
func SeedCourt(t *testing.T, db *gorm.DB, name, code string, surveys ...models.Survey) models.Court {
	t.Helper()

	c := models.Court{Name: name, KbjuCode: code}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create court: %v", err)
	}
	for _, s := range surveys {
		if err := db.Create(&models.CourtSurvey{CourtID: c.ID, SurveyID: s.ID}).Error; err != nil {
			t.Fatalf("assign court to survey: %v", err)
		}
	}
	return c
}
