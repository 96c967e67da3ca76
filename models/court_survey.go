package models

// CourtSurvey là bảng nối duy nhất giữa Court và Survey.
// Được đăng ký làm join table của Survey.Courts và Court.Surveys trong AutoMigrate.
type CourtSurvey struct {
	CourtID  uint    `gorm:"column:court_id;primaryKey;autoIncrement:false" json:"court_id"`
	SurveyID uint    `gorm:"column:survey_id;primaryKey;autoIncrement:false" json:"survey_id"`
	Court    *Court  `gorm:"foreignKey:CourtID;constraint:OnDelete:CASCADE" json:"court,omitempty"`
	Survey   *Survey `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"survey,omitempty"`
}

func (CourtSurvey) TableName() string {
	return "court_survey"
}

func (cs CourtSurvey) String() string {
	court := label("Court", cs.CourtID)
	if cs.Court != nil {
		court = cs.Court.String()
	}
	survey := label("Survey", cs.SurveyID)
	if cs.Survey != nil {
		survey = cs.Survey.String()
	}
	return court + " " + survey
}
