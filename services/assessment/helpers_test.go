package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled :memory: connection is a fresh empty database; pin to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.LessonCompletion{},
		&courseModels.Assessment{},
		&courseModels.Question{},
		&courseModels.StudentAssessment{},
		&courseModels.StudentAnswer{},
		&courseModels.Certificate{},
		&courseModels.Enrollment{},
	))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, passingScore float64) *courseModels.Course {
	t.Helper()
	course := &courseModels.Course{
		Title:        "Go from Zero",
		Description:  "An introduction to Go",
		Author:       "Jane Roe",
		PassingScore: passingScore,
		Status:       courseModels.CourseDraft,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, order int) *courseModels.Module {
	t.Helper()
	module := &courseModels.Module{
		CourseID:   courseID,
		Title:      "Module",
		OrderIndex: order,
	}
	require.NoError(t, db.Create(module).Error)
	return module
}

func createModuleAssessment(t *testing.T, db *gorm.DB, moduleID uint) *courseModels.Assessment {
	t.Helper()
	a := &courseModels.Assessment{
		ModuleID: &moduleID,
		Title:    "Checkpoint",
		Type:     courseModels.AssessmentMixed,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

// addQuestion creates a question with explicit points, bypassing the
// allocator, for tests that exercise grading in isolation.
func addQuestion(t *testing.T, db *gorm.DB, assessmentID uint, qType string, correct *int, points float64, order int) *courseModels.Question {
	t.Helper()
	q := &courseModels.Question{
		AssessmentID:  assessmentID,
		Text:          "What does := do?",
		Type:          qType,
		CorrectOption: correct,
		Points:        points,
		OrderIndex:    order,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func createEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, progress float64) *courseModels.Enrollment {
	t.Helper()
	enrollment := &courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentEnrolled,
		Progress: progress,
	}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}

func intPtr(v int) *int { return &v }

func questionPoints(t *testing.T, db *gorm.DB, assessmentID uint) []float64 {
	t.Helper()
	var questions []courseModels.Question
	require.NoError(t, db.
		Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Order("order_index asc, id asc").
		Find(&questions).Error)
	points := make([]float64, len(questions))
	for i, q := range questions {
		points[i] = q.Points
	}
	return points
}
