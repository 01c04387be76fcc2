package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentID = uint(42)

func TestSubmitAssessmentFullyAutoGraded(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 5, 1)
	q2 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(2), 5, 2)

	submission, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)}, // right
		{QuestionID: q2.ID, SelectedOption: intPtr(1)}, // wrong
	})
	require.NoError(t, err)

	assert.Equal(t, courseModels.SubmissionGraded, submission.Status)
	require.NotNil(t, submission.Score)
	assert.Equal(t, 5.0, *submission.Score)
	assert.NotNil(t, submission.GradedAt)

	pending, err := assessment.PendingQuestionIDs(db, submission.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitAssessmentWithEssayStaysPending(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(1), 5, 1)
	q2 := addQuestion(t, db, a.ID, courseModels.QuestionEssay, nil, 5, 2)

	submission, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(1)},
		{QuestionID: q2.ID, Text: "Channels synchronize goroutines."},
	})
	require.NoError(t, err)

	assert.Equal(t, courseModels.SubmissionSubmitted, submission.Status)
	assert.Nil(t, submission.Score)
	assert.Nil(t, submission.GradedAt)

	pending, err := assessment.PendingQuestionIDs(db, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{q2.ID}, pending)
}

func TestSubmitAssessmentRejectsResubmission(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)
	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 10, 1)

	first, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)},
	})
	require.NoError(t, err)

	_, err = assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)},
	})
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentAlreadySubmitted))

	ruleErr, _ := assessment.AsRuleError(err)
	assert.Equal(t, assessment.KindStateConflict, ruleErr.Kind)

	// The original submission is untouched
	var stored courseModels.StudentAssessment
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 10.0, *stored.Score)

	// A different student can still submit
	_, err = assessment.SubmitAssessment(db, studentID+1, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)},
	})
	assert.NoError(t, err)
}

func TestSubmitAssessmentNoQuestions(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	_, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: 999, SelectedOption: intPtr(0)},
	})
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentsWithoutQuestions))
}

// An unanswered multiple choice question earns zero rather than staying
// pending.
func TestSubmitAssessmentMissingAnswerEarnsZero(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 5, 1)
	addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 5, 2)

	submission, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, courseModels.SubmissionGraded, submission.Status)
	require.NotNil(t, submission.Score)
	assert.Equal(t, 5.0, *submission.Score)
}

func TestRecordManualScore(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 4, 1)
	q2 := addQuestion(t, db, a.ID, courseModels.QuestionEssay, nil, 3, 2)
	q3 := addQuestion(t, db, a.ID, courseModels.QuestionEssay, nil, 3, 3)

	submission, err := assessment.SubmitAssessment(db, studentID, a.ID, []assessment.AnswerInput{
		{QuestionID: q1.ID, SelectedOption: intPtr(0)},
		{QuestionID: q2.ID, Text: "First essay"},
		{QuestionID: q3.ID, Text: "Second essay"},
	})
	require.NoError(t, err)
	require.Equal(t, courseModels.SubmissionSubmitted, submission.Status)

	t.Run("score above question points rejected", func(t *testing.T) {
		_, err := assessment.RecordManualScore(db, submission.ID, q2.ID, 3.5)
		assert.True(t, assessment.HasCode(err, assessment.CodeScoreOutOfRange))
	})

	t.Run("negative score rejected", func(t *testing.T) {
		_, err := assessment.RecordManualScore(db, submission.ID, q2.ID, -1)
		assert.True(t, assessment.HasCode(err, assessment.CodeScoreOutOfRange))
	})

	t.Run("auto graded answer rejected", func(t *testing.T) {
		_, err := assessment.RecordManualScore(db, submission.ID, q1.ID, 2)
		assert.True(t, assessment.HasCode(err, assessment.CodeAnswerNotManuallyGradable))
	})

	t.Run("first essay scored, submission stays pending", func(t *testing.T) {
		updated, err := assessment.RecordManualScore(db, submission.ID, q2.ID, 2.5)
		require.NoError(t, err)
		assert.Equal(t, courseModels.SubmissionSubmitted, updated.Status)
		assert.Nil(t, updated.Score)

		pending, err := assessment.PendingQuestionIDs(db, submission.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{q3.ID}, pending)
	})

	t.Run("last essay scored, submission finalizes", func(t *testing.T) {
		updated, err := assessment.RecordManualScore(db, submission.ID, q3.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, courseModels.SubmissionGraded, updated.Status)
		require.NotNil(t, updated.Score)
		assert.Equal(t, 9.5, *updated.Score) // 4 + 2.5 + 3
		assert.NotNil(t, updated.GradedAt)
	})

	t.Run("graded submission rejects further scores", func(t *testing.T) {
		_, err := assessment.RecordManualScore(db, submission.ID, q3.ID, 1)
		assert.True(t, assessment.HasCode(err, assessment.CodeSubmissionAlreadyGraded))
	})
}
