package assessment

import (
	courseModels "learnly/models/course"
)

// AnswerInput is one submitted answer. SelectedOption carries the
// zero-based option index for multiple choice questions; Text carries the
// essay body.
type AnswerInput struct {
	QuestionID     uint   `json:"question_id"`
	SelectedOption *int   `json:"selected_option,omitempty"`
	Text           string `json:"text,omitempty"`
}

// GradeResult is the outcome of grading a single answer. AwardedPoints is
// nil when the answer needs manual grading.
type GradeResult struct {
	AwardedPoints *float64 `json:"awarded_points"`
	IsAutoGraded  bool     `json:"is_auto_graded"`
}

// GradeAnswer scores one submitted answer. Multiple choice compares the
// submitted option index against the correct index (strict numeric
// equality, never option text) and awards the question's full points or
// zero. Essays defer to manual grading.
func GradeAnswer(q courseModels.Question, in AnswerInput) GradeResult {
	if q.Type == courseModels.QuestionEssay {
		return GradeResult{AwardedPoints: nil, IsAutoGraded: false}
	}

	awarded := 0.0
	if in.SelectedOption != nil && q.CorrectOption != nil && *in.SelectedOption == *q.CorrectOption {
		awarded = q.Points
	}
	return GradeResult{AwardedPoints: &awarded, IsAutoGraded: true}
}
