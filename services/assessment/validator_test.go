package assessment_test

import (
	"testing"

	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A course blocked for structural reasons becomes submittable once the
// missing pieces are filled in.
func TestValidateCourseForSubmission(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	m1 := createModule(t, db, course.ID, 1)
	m2 := createModule(t, db, course.ID, 2)

	a1 := createModuleAssessment(t, db, m1.ID)
	addQuestion(t, db, a1.ID, courseModels.QuestionMultipleChoice, intPtr(0), 10, 1)

	// Module 2 has no assessment yet
	err := assessment.ValidateCourseForSubmission(db, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeModulesWithoutAssessment))

	ruleErr, ok := assessment.AsRuleError(err)
	require.True(t, ok)
	assert.Equal(t, assessment.KindStructural, ruleErr.Kind)

	// Adding an empty assessment swaps the failure
	a2 := createModuleAssessment(t, db, m2.ID)
	err = assessment.ValidateCourseForSubmission(db, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentsWithoutQuestions))

	// One question fixes the course
	addQuestion(t, db, a2.ID, courseModels.QuestionEssay, nil, 10, 1)
	assert.NoError(t, assessment.ValidateCourseForSubmission(db, course.ID))
}

// Modules missing assessments are reported before empty assessments.
func TestValidateCourseForSubmissionReportsMissingFirst(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	m1 := createModule(t, db, course.ID, 1)
	createModule(t, db, course.ID, 2)

	createModuleAssessment(t, db, m1.ID) // empty, but module 2 has nothing at all

	err := assessment.ValidateCourseForSubmission(db, course.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeModulesWithoutAssessment))
}

func TestValidateCourseForSubmissionNoModules(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)

	// Nothing to validate yet
	assert.NoError(t, assessment.ValidateCourseForSubmission(db, course.ID))
}

func TestGuardModuleDelete(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	m1 := createModule(t, db, course.ID, 1)
	m2 := createModule(t, db, course.ID, 2)
	createModuleAssessment(t, db, m1.ID)

	err := assessment.GuardModuleDelete(db, m1.ID)
	require.Error(t, err)
	assert.True(t, assessment.HasCode(err, assessment.CodeModuleHasAssessment))

	ruleErr, _ := assessment.AsRuleError(err)
	assert.Equal(t, assessment.KindStateConflict, ruleErr.Kind)

	assert.NoError(t, assessment.GuardModuleDelete(db, m2.ID))
}

func TestValidateAssessmentOwner(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)

	t.Run("both owners set", func(t *testing.T) {
		a := &courseModels.Assessment{CourseID: &course.ID, ModuleID: &module.ID}
		err := assessment.ValidateAssessmentOwner(db, a)
		assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentOwnerConflict))
	})

	t.Run("no owner set", func(t *testing.T) {
		a := &courseModels.Assessment{}
		err := assessment.ValidateAssessmentOwner(db, a)
		assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentOwnerConflict))
	})

	t.Run("module owner accepted", func(t *testing.T) {
		a := &courseModels.Assessment{ModuleID: &module.ID}
		assert.NoError(t, assessment.ValidateAssessmentOwner(db, a))
	})

	t.Run("second assessment on the same module rejected", func(t *testing.T) {
		createModuleAssessment(t, db, module.ID)

		a := &courseModels.Assessment{ModuleID: &module.ID}
		err := assessment.ValidateAssessmentOwner(db, a)
		assert.True(t, assessment.HasCode(err, assessment.CodeModuleAlreadyHasAssessment))
	})

	t.Run("course-level rejected once modules own assessments", func(t *testing.T) {
		a := &courseModels.Assessment{CourseID: &course.ID}
		err := assessment.ValidateAssessmentOwner(db, a)
		assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentOwnerConflict))
	})
}

func TestValidateAssessmentOwnerLegacyCourse(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 7)
	module := createModule(t, db, course.ID, 1)

	// Course-level assessment on a course with no module-owned ones
	legacy := &courseModels.Assessment{CourseID: &course.ID, Title: "Final exam"}
	require.NoError(t, assessment.ValidateAssessmentOwner(db, legacy))
	require.NoError(t, db.Create(legacy).Error)

	// Now module-level is blocked for this course
	a := &courseModels.Assessment{ModuleID: &module.ID}
	err := assessment.ValidateAssessmentOwner(db, a)
	assert.True(t, assessment.HasCode(err, assessment.CodeAssessmentOwnerConflict))
}
