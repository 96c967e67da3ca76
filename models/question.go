package models

import "time"

type Question struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID       uint      `gorm:"column:survey_id;not null;index" json:"survey_id"`
	Survey         *Survey   `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"survey,omitempty"`
	Text           string    `gorm:"column:text;type:text;not null" json:"text"`
	HasOtherOption bool      `gorm:"column:has_other_option;not null;default:false" json:"has_other_option"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	AnswerOptions []AnswerOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answer_options,omitempty"`
}

func (Question) TableName() string {
	return "question"
}

func (q Question) String() string {
	if q.Text == "" {
		return label("Question", q.ID)
	}
	return q.Text
}
