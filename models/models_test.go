package models_test

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/court-survey/models"
	"github.com/vnkhanh/court-survey/testutil"
)

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model interface{ TableName() string }
		want  string
	}{
		{models.Court{}, "court"},
		{models.Survey{}, "survey"},
		{models.CourtSurvey{}, "court_survey"},
		{models.Question{}, "question"},
		{models.AnswerOption{}, "answer_option"},
		{models.SurveyResponse{}, "survey_response"},
		{models.QuestionResponse{}, "question_response"},
	}
	for _, tt := range tests {
		if got := tt.model.TableName(); got != tt.want {
			t.Errorf("TableName() = %q, want %q", got, tt.want)
		}
	}
}

func TestAutoMigrateCreatesContractTables(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for _, table := range []string{"court", "survey", "court_survey", "question", "answer_option", "survey_response", "question_response"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestCourtCodeUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := db.Create(&models.Court{Name: "Toà A", KbjuCode: "C001"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := db.Create(&models.Court{Name: "Toà B", KbjuCode: "C001"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate kbju_code: err = %v, want ErrDuplicatedKey", err)
	}
	if n := count(t, db, &models.Court{}, ""); n != 1 {
		t.Errorf("courts = %d, want 1", n)
	}
}

func TestDeleteSurveyCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s := testutil.SeedSurvey(t, db, "Service Quality", "Q1", "Q2")
	other := testutil.SeedSurvey(t, db, "Other", "Q3")
	c := testutil.SeedCourt(t, db, "Toà A", "C001", s, other)

	resp := models.SurveyResponse{SurveyID: s.ID, CourtID: c.ID}
	if err := db.Create(&resp).Error; err != nil {
		t.Fatalf("create response: %v", err)
	}
	answer := models.QuestionResponse{
		SurveyResponseID: resp.ID,
		QuestionID:       s.Questions[0].ID,
		SelectedOptionID: s.Questions[0].AnswerOptions[0].ID,
		CustomAnswer:     "ok",
	}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if err := db.Create(&models.ExportJob{JobID: "job-1", SurveyID: s.ID, Format: "csv"}).Error; err != nil {
		t.Fatalf("create export job: %v", err)
	}
	if err := db.Create(&models.ExportJob{JobID: "job-2", SurveyID: other.ID, Format: "csv"}).Error; err != nil {
		t.Fatalf("create export job: %v", err)
	}

	if err := db.Delete(&models.Survey{}, s.ID).Error; err != nil {
		t.Fatalf("delete survey: %v", err)
	}

	if n := count(t, db, &models.Question{}, "survey_id = ?", s.ID); n != 0 {
		t.Errorf("questions left = %d, want 0", n)
	}
	if n := count(t, db, &models.AnswerOption{}, "question_id IN ?", []uint{s.Questions[0].ID, s.Questions[1].ID}); n != 0 {
		t.Errorf("answer options left = %d, want 0", n)
	}
	if n := count(t, db, &models.CourtSurvey{}, "survey_id = ?", s.ID); n != 0 {
		t.Errorf("court_survey rows left = %d, want 0", n)
	}
	if n := count(t, db, &models.SurveyResponse{}, "survey_id = ?", s.ID); n != 0 {
		t.Errorf("survey responses left = %d, want 0", n)
	}
	if n := count(t, db, &models.QuestionResponse{}, ""); n != 0 {
		t.Errorf("question responses left = %d, want 0", n)
	}
	if n := count(t, db, &models.ExportJob{}, "survey_id = ?", s.ID); n != 0 {
		t.Errorf("export jobs left = %d, want 0", n)
	}
	if n := count(t, db, &models.ExportJob{}, "survey_id = ?", other.ID); n != 1 {
		t.Errorf("export jobs of other survey = %d, want 1", n)
	}

	// dữ liệu không liên quan còn nguyên
	if n := count(t, db, &models.Question{}, "survey_id = ?", other.ID); n != 1 {
		t.Errorf("other survey questions = %d, want 1", n)
	}
	if n := count(t, db, &models.CourtSurvey{}, "survey_id = ?", other.ID); n != 1 {
		t.Errorf("other court_survey rows = %d, want 1", n)
	}
	if n := count(t, db, &models.Court{}, ""); n != 1 {
		t.Errorf("courts = %d, want 1", n)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s := testutil.SeedSurvey(t, db, "Service Quality", "Q1", "Q2")
	c := testutil.SeedCourt(t, db, "Toà A", "C001", s)

	resp := models.SurveyResponse{SurveyID: s.ID, CourtID: c.ID}
	if err := db.Create(&resp).Error; err != nil {
		t.Fatalf("create response: %v", err)
	}
	for _, q := range s.Questions {
		a := models.QuestionResponse{SurveyResponseID: resp.ID, QuestionID: q.ID, SelectedOptionID: q.AnswerOptions[0].ID, CustomAnswer: "x"}
		if err := db.Create(&a).Error; err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	q1 := s.Questions[0]
	if err := db.Delete(&models.Question{}, q1.ID).Error; err != nil {
		t.Fatalf("delete question: %v", err)
	}

	if n := count(t, db, &models.AnswerOption{}, "question_id = ?", q1.ID); n != 0 {
		t.Errorf("answer options left = %d, want 0", n)
	}
	if n := count(t, db, &models.QuestionResponse{}, "question_id = ?", q1.ID); n != 0 {
		t.Errorf("question responses left = %d, want 0", n)
	}
	if n := count(t, db, &models.QuestionResponse{}, ""); n != 1 {
		t.Errorf("question responses = %d, want 1 (other question)", n)
	}
	if n := count(t, db, &models.SurveyResponse{}, ""); n != 1 {
		t.Errorf("survey responses = %d, want 1", n)
	}
}

func TestDeleteCourtCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s := testutil.SeedSurvey(t, db, "Service Quality", "Q1")
	c := testutil.SeedCourt(t, db, "Toà A", "C001", s)
	keep := testutil.SeedCourt(t, db, "Toà B", "C002", s)

	for _, court := range []models.Court{c, keep} {
		if err := db.Create(&models.SurveyResponse{SurveyID: s.ID, CourtID: court.ID}).Error; err != nil {
			t.Fatalf("create response: %v", err)
		}
	}

	if err := db.Delete(&models.Court{}, c.ID).Error; err != nil {
		t.Fatalf("delete court: %v", err)
	}

	if n := count(t, db, &models.CourtSurvey{}, "court_id = ?", c.ID); n != 0 {
		t.Errorf("court_survey rows left = %d, want 0", n)
	}
	if n := count(t, db, &models.SurveyResponse{}, "court_id = ?", c.ID); n != 0 {
		t.Errorf("survey responses left = %d, want 0", n)
	}
	if n := count(t, db, &models.SurveyResponse{}, ""); n != 1 {
		t.Errorf("survey responses = %d, want 1", n)
	}
	if n := count(t, db, &models.Survey{}, ""); n != 1 {
		t.Errorf("surveys = %d, want 1", n)
	}
}

func TestForeignKeyViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)

	err := db.Create(&models.Question{SurveyID: 999, Text: "orphan"}).Error
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("question with unknown survey: err = %v, want ErrForeignKeyViolated", err)
	}

	s := testutil.SeedSurvey(t, db, "S", "Q1")
	err = db.Create(&models.SurveyResponse{SurveyID: s.ID, CourtID: 42}).Error
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("response with unknown court: err = %v, want ErrForeignKeyViolated", err)
	}
}

// Schema không kiểm tra câu hỏi có thuộc survey của lượt trả lời hay không.
func TestQuestionResponseSurveyMismatchNotEnforcedBySchema(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s1 := testutil.SeedSurvey(t, db, "S1", "Q1")
	s2 := testutil.SeedSurvey(t, db, "S2", "Q2")
	c := testutil.SeedCourt(t, db, "Toà A", "C001", s1)

	resp := models.SurveyResponse{SurveyID: s1.ID, CourtID: c.ID}
	if err := db.Create(&resp).Error; err != nil {
		t.Fatalf("create response: %v", err)
	}

	foreign := s2.Questions[0]
	err := db.Create(&models.QuestionResponse{
		SurveyResponseID: resp.ID,
		QuestionID:       foreign.ID,
		SelectedOptionID: foreign.AnswerOptions[0].ID,
		CustomAnswer:     "mismatch",
	}).Error
	if err != nil {
		t.Fatalf("schema unexpectedly rejected cross-survey answer: %v", err)
	}
}

func TestSurveyTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s := models.Survey{Title: "Before"}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", s)
	}

	created, updated := s.CreatedAt, s.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	if err := db.Model(&s).Update("title", "After").Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	var got models.Survey
	if err := db.First(&got, s.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.UpdatedAt.After(updated) {
		t.Errorf("updated_at not refreshed: before %v, after %v", updated, got.UpdatedAt)
	}
	if d := got.CreatedAt.Sub(created); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("created_at changed: %v -> %v", created, got.CreatedAt)
	}
}

func TestCourtsAssociationUsesCourtSurveyTable(t *testing.T) {
	db := testutil.SetupTestDB(t)

	s := testutil.SeedSurvey(t, db, "S")
	c1 := testutil.SeedCourt(t, db, "Toà A", "C001")
	c2 := testutil.SeedCourt(t, db, "Toà B", "C002")

	if err := db.Model(&s).Association("Courts").Append(&c1, &c2); err != nil {
		t.Fatalf("append courts: %v", err)
	}
	if n := count(t, db, &models.CourtSurvey{}, "survey_id = ?", s.ID); n != 2 {
		t.Fatalf("court_survey rows = %d, want 2", n)
	}

	var court models.Court
	if err := db.Preload("Surveys").First(&court, c1.ID).Error; err != nil {
		t.Fatalf("load court: %v", err)
	}
	if len(court.Surveys) != 1 || court.Surveys[0].ID != s.ID {
		t.Errorf("court.Surveys = %+v, want [%d]", court.Surveys, s.ID)
	}
}

func TestStringLabels(t *testing.T) {
	court := &models.Court{ID: 1, Name: "Toà A"}
	survey := &models.Survey{ID: 2, Title: "Service Quality"}
	question := &models.Question{ID: 3, Text: "Bạn hài lòng không?"}
	resp := &models.SurveyResponse{ID: 4, Survey: survey}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"court", court.String(), "Toà A"},
		{"survey", survey.String(), "Service Quality"},
		{"court survey", models.CourtSurvey{Court: court, Survey: survey}.String(), "Toà A Service Quality"},
		{"question", question.String(), "Bạn hài lòng không?"},
		{"answer option shows question", models.AnswerOption{Text: "khác", Question: question}.String(), "Bạn hài lòng không?"},
		{"survey response shows survey", resp.String(), "Service Quality"},
		{"question response shows response", models.QuestionResponse{SurveyResponse: resp}.String(), "Service Quality"},
		{"unloaded relation", models.AnswerOption{ID: 9}.String(), "AnswerOption #9"},
		{"unloaded court survey", models.CourtSurvey{CourtID: 1, SurveyID: 2}.String(), "Court #1 Survey #2"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
