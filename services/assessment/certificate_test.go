package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificateRequiresFullProgress(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	createEnrollment(t, db, studentID, course.ID, 80)

	_, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentsNotCompleted))

	ruleErr, ok := assessment.AsRuleError(err)
	require.True(t, ok)
	assert.Equal(t, assessment.KindEligibility, ruleErr.Kind)
	assert.Equal(t, 80.0, ruleErr.Details["progress"])
}

func TestIssueCertificateRequiresGradedAssessments(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	createModuleAssessment(t, db, module.ID)
	createEnrollment(t, db, studentID, course.ID, 100)

	// Full progress but no submission: final grade stays nil
	_, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentsNotCompleted))
}

func TestIssueCertificateGradeGate(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)
	createEnrollment(t, db, studentID, course.ID, 100)

	gradedSubmission(t, db, studentID, a.ID, 6.9)

	_, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeFinalGradeBelowPassingScore))

	ruleErr, _ := assessment.AsRuleError(err)
	assert.Equal(t, 6.9, ruleErr.Details["final_grade"])
	assert.Equal(t, 7.0, ruleErr.Details["passing_score"])
}

func TestIssueCertificateAtExactPassingScore(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)
	createEnrollment(t, db, studentID, course.ID, 100)

	gradedSubmission(t, db, studentID, a.ID, 7)

	cert, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, studentID, cert.UserID)
	assert.Equal(t, course.ID, cert.CourseID)
	assert.Equal(t, 7.0, cert.FinalGrade)
	assert.NotEmpty(t, cert.VerificationCode)
	assert.False(t, cert.IssuedAt.IsZero())
}

func TestIssueCertificateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)
	createEnrollment(t, db, studentID, course.ID, 100)
	gradedSubmission(t, db, studentID, a.ID, 9)

	first, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.NoError(t, err)

	second, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.VerificationCode, second.VerificationCode)

	var count int64
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", studentID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// The frozen grade on the certificate does not drift even if later data
// changes would change the computed mean.
func TestIssueCertificateFreezesGrade(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)
	a := createModuleAssessment(t, db, module.ID)
	createEnrollment(t, db, studentID, course.ID, 100)
	gradedSubmission(t, db, studentID, a.ID, 8)

	cert, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.NoError(t, err)
	require.Equal(t, 8.0, cert.FinalGrade)

	// Raise the stored score after issuance
	require.NoError(t, db.Model(&courseModels.StudentAssessment{}).
		Where("user_id = ? AND assessment_id = ?", studentID, a.ID).
		Update("score", 10).Error)

	again, err := assessment.IssueCertificate(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, again.FinalGrade)
}
