package models

// AnswerOption là một phương án trả lời tự do ("khác") của câu hỏi.
type AnswerOption struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID uint      `gorm:"column:question_id;not null;index" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Text       string    `gorm:"column:text;type:text;not null" json:"text"`
}

func (AnswerOption) TableName() string {
	return "answer_option"
}

// String hiển thị nội dung câu hỏi chứ không phải nội dung phương án.
func (o AnswerOption) String() string {
	if o.Question == nil {
		return label("AnswerOption", o.ID)
	}
	return o.Question.String()
}
