package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReallocatePoints(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	for i := 1; i <= 3; i++ {
		addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 0, i)
	}

	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Equal(t, []float64{4, 3, 3}, questionPoints(t, db, a.ID))
}

func TestReallocatePointsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	for i := 1; i <= 4; i++ {
		addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 0, i)
	}

	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	first := questionPoints(t, db, a.ID)

	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Equal(t, first, questionPoints(t, db, a.ID))
	assert.Equal(t, []float64{3, 3, 2, 2}, first)
}

func TestReallocatePointsAfterAddAndDelete(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	q1 := addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 0, 1)
	addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(1), 0, 2)
	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Equal(t, []float64{5, 5}, questionPoints(t, db, a.ID))

	// Adding a third question rebalances all three
	addQuestion(t, db, a.ID, courseModels.QuestionEssay, nil, 0, 3)
	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Equal(t, []float64{4, 3, 3}, questionPoints(t, db, a.ID))

	// Deleting the first question gives its points back to the rest
	require.NoError(t, db.Model(q1).Update("is_deleted", true).Error)
	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Equal(t, []float64{5, 5}, questionPoints(t, db, a.ID))
}

func TestReallocatePointsNoQuestions(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 10))
	assert.Empty(t, questionPoints(t, db, a.ID))
}

func TestReallocatePointsCustomBudget(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)

	for i := 1; i <= 3; i++ {
		addQuestion(t, db, a.ID, courseModels.QuestionMultipleChoice, intPtr(0), 0, i)
	}

	require.NoError(t, assessment.ReallocatePoints(db, a.ID, 100))
	assert.Equal(t, []float64{34, 33, 33}, questionPoints(t, db, a.ID))
}
