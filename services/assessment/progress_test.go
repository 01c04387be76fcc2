package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateProgress(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	createEnrollment(t, db, studentID, course.ID, 0)

	lessons := make([]courseModels.Lesson, 2)
	for i := range lessons {
		lessons[i] = courseModels.Lesson{
			CourseID: course.ID,
			ModuleID: module.ID,
			Title:    "Lesson",
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	// Half done
	require.NoError(t, db.Create(&courseModels.LessonCompletion{
		UserID: studentID, CourseID: course.ID, LessonID: lessons[0].ID,
	}).Error)

	enrollment, err := assessment.RecalculateProgress(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentInProgress, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)

	// All done
	require.NoError(t, db.Create(&courseModels.LessonCompletion{
		UserID: studentID, CourseID: course.ID, LessonID: lessons[1].ID,
	}).Error)

	enrollment, err = assessment.RecalculateProgress(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	// Completion time does not move on recalculation
	completedAt := *enrollment.CompletedAt
	enrollment, err = assessment.RecalculateProgress(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, completedAt.Unix(), enrollment.CompletedAt.Unix())
}

func TestRecalculateProgressIgnoresDeletedLessons(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	createEnrollment(t, db, studentID, course.ID, 0)

	kept := courseModels.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Kept"}
	removed := courseModels.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Removed", IsDeleted: true}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&removed).Error)

	require.NoError(t, db.Create(&courseModels.LessonCompletion{
		UserID: studentID, CourseID: course.ID, LessonID: kept.ID,
	}).Error)

	enrollment, err := assessment.RecalculateProgress(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, enrollment.Progress)
	assert.Equal(t, 1, enrollment.TotalLessons)
}

func TestRecalculateProgressNoLessons(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	createEnrollment(t, db, studentID, course.ID, 0)

	enrollment, err := assessment.RecalculateProgress(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentEnrolled, enrollment.Status)
}
