package assessment_test

import (
	"testing"
	"time"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gradedSubmission(t *testing.T, db *gorm.DB, userID, assessmentID uint, score float64) {
	t.Helper()
	now := time.Now()
	submission := courseModels.StudentAssessment{
		UserID:       userID,
		AssessmentID: assessmentID,
		Status:       courseModels.SubmissionGraded,
		Score:        &score,
		SubmittedAt:  now,
		GradedAt:     &now,
	}
	require.NoError(t, db.Create(&submission).Error)
}

func TestComputeFinalGradeIsUnweightedMean(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	m1 := createModule(t, db, course.ID, 1)
	m2 := createModule(t, db, course.ID, 2)
	a1 := createModuleAssessment(t, db, m1.ID)
	a2 := createModuleAssessment(t, db, m2.ID)

	gradedSubmission(t, db, studentID, a1.ID, 8)
	gradedSubmission(t, db, studentID, a2.ID, 6)

	grade, err := assessment.ComputeFinalGrade(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, grade)
	assert.Equal(t, 7.0, *grade)
}

func TestComputeFinalGradeNilWhileIncomplete(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	m1 := createModule(t, db, course.ID, 1)
	m2 := createModule(t, db, course.ID, 2)
	a1 := createModuleAssessment(t, db, m1.ID)
	a2 := createModuleAssessment(t, db, m2.ID)

	// Only one of two assessments graded
	gradedSubmission(t, db, studentID, a1.ID, 10)

	grade, err := assessment.ComputeFinalGrade(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, grade)

	// A submission pending manual grading does not count either
	submission := courseModels.StudentAssessment{
		UserID:       studentID,
		AssessmentID: a2.ID,
		Status:       courseModels.SubmissionSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, db.Create(&submission).Error)

	grade, err = assessment.ComputeFinalGrade(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, grade)
}

func TestComputeFinalGradeNoAssessments(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	createModule(t, db, course.ID, 1)

	grade, err := assessment.ComputeFinalGrade(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, grade)
}

func TestComputeFinalGradeIncludesLegacyCourseAssessments(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)

	legacy := courseModels.Assessment{CourseID: &course.ID, Title: "Final exam"}
	require.NoError(t, db.Create(&legacy).Error)

	gradedSubmission(t, db, studentID, legacy.ID, 9)

	grade, err := assessment.ComputeFinalGrade(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, grade)
	assert.Equal(t, 9.0, *grade)
}
