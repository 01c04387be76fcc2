package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeAnswerMultipleChoice(t *testing.T) {
	question := courseModels.Question{
		Type:          courseModels.QuestionMultipleChoice,
		CorrectOption: intPtr(2),
		Points:        4,
	}

	tests := []struct {
		name     string
		selected *int
		want     float64
	}{
		{name: "correct index earns full points", selected: intPtr(2), want: 4},
		{name: "wrong index earns zero", selected: intPtr(1), want: 0},
		{name: "missing answer earns zero", selected: nil, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := assessment.GradeAnswer(question, assessment.AnswerInput{SelectedOption: tc.selected})
			assert.True(t, result.IsAutoGraded)
			require.NotNil(t, result.AwardedPoints)
			assert.Equal(t, tc.want, *result.AwardedPoints)
		})
	}
}

// Grading compares option indexes, never option text; an answer matching
// the correct text under a different index earns nothing.
func TestGradeAnswerStrictIndexComparison(t *testing.T) {
	question := courseModels.Question{
		Type:          courseModels.QuestionMultipleChoice,
		Options:       []byte(`["4","four","IV"]`),
		CorrectOption: intPtr(0),
		Points:        5,
	}

	result := assessment.GradeAnswer(question, assessment.AnswerInput{SelectedOption: intPtr(1)})
	require.NotNil(t, result.AwardedPoints)
	assert.Equal(t, 0.0, *result.AwardedPoints)
}

func TestGradeAnswerEssayDefersToManual(t *testing.T) {
	question := courseModels.Question{
		Type:   courseModels.QuestionEssay,
		Points: 5,
	}

	result := assessment.GradeAnswer(question, assessment.AnswerInput{Text: "Goroutines are cheap."})
	assert.False(t, result.IsAutoGraded)
	assert.Nil(t, result.AwardedPoints)
}
