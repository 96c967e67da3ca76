package models

import "time"

// SurveyResponse là một lượt gửi khảo sát của một toà án.
type SurveyResponse struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID  uint      `gorm:"column:survey_id;not null;index" json:"survey_id"`
	Survey    *Survey   `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"survey,omitempty"`
	CourtID   uint      `gorm:"column:court_id;not null;index" json:"court_id"`
	Court     *Court    `gorm:"foreignKey:CourtID;constraint:OnDelete:CASCADE" json:"court,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Answers []QuestionResponse `gorm:"foreignKey:SurveyResponseID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (SurveyResponse) TableName() string {
	return "survey_response"
}

func (r SurveyResponse) String() string {
	if r.Survey == nil {
		return label("SurveyResponse", r.ID)
	}
	return r.Survey.String()
}
