package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All liệt kê các model theo thứ tự phụ thuộc.
func All() []interface{} {
	return []interface{}{
		&Court{},
		&Survey{},
		&CourtSurvey{},
		&Question{},
		&AnswerOption{},
		&SurveyResponse{},
		&QuestionResponse{},
		&ExportJob{},
	}
}

// SetupJoinTables dùng CourtSurvey làm bảng nối cho cả hai chiều của quan hệ Court <-> Survey.
// Phải gọi trước mọi truy vấn Association trên Courts / Surveys.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Survey{}, "Courts", &CourtSurvey{}); err != nil {
		return fmt.Errorf("setup join table survey.courts: %w", err)
	}
	if err := db.SetupJoinTable(&Court{}, "Surveys", &CourtSurvey{}); err != nil {
		return fmt.Errorf("setup join table court.surveys: %w", err)
	}
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
