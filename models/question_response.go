package models

type QuestionResponse struct {
	ID               uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyResponseID uint            `gorm:"column:survey_response_id;not null;index" json:"survey_response_id"`
	SurveyResponse   *SurveyResponse `gorm:"foreignKey:SurveyResponseID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID       uint            `gorm:"column:question_id;not null;index" json:"question_id"`
	Question         *Question       `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	SelectedOptionID uint            `gorm:"column:selected_option_id;not null;index" json:"selected_option_id"`
	SelectedOption   *AnswerOption   `gorm:"foreignKey:SelectedOptionID;constraint:OnDelete:CASCADE" json:"selected_option,omitempty"`
	CustomAnswer     string          `gorm:"column:custom_answer;size:255;not null" json:"custom_answer"`
}

func (QuestionResponse) TableName() string {
	return "question_response"
}

func (qr QuestionResponse) String() string {
	if qr.SurveyResponse == nil {
		return label("QuestionResponse", qr.ID)
	}
	return qr.SurveyResponse.String()
}
