package models

import (
	"fmt"
	"time"
)

type Survey struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Courts    []Court          `gorm:"many2many:court_survey;constraint:OnDelete:CASCADE" json:"courts,omitempty"`
	Questions []Question       `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Responses []SurveyResponse `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Survey) TableName() string {
	return "survey"
}

func (s Survey) String() string {
	if s.Title == "" {
		return label("Survey", s.ID)
	}
	return s.Title
}

// label là nhãn dự phòng khi bản ghi liên quan chưa được nạp.
func label(entity string, id uint) string {
	return fmt.Sprintf("%s #%d", entity, id)
}
