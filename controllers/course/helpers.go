package controllers

import (
	"learnly/database"
	"learnly/middleware"
	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/gofiber/fiber/v2"
)

// ruleErrorResponse translates an engine rule error into the JSON envelope.
// Returns false when err is not a rule error.
func ruleErrorResponse(c *fiber.Ctx, err error) (error, bool) {
	ruleErr, ok := assessment.AsRuleError(err)
	if !ok {
		return nil, false
	}

	status := fiber.StatusBadRequest
	switch ruleErr.Kind {
	case assessment.KindStructural:
		status = fiber.StatusUnprocessableEntity
	case assessment.KindStateConflict:
		status = fiber.StatusConflict
	case assessment.KindEligibility:
		status = fiber.StatusBadRequest
	}

	return middleware.JsonResponse(c, status, false, ruleErr.Message, fiber.Map{
		"code":    ruleErr.Code,
		"details": ruleErr.Details,
	}), true
}

// assessmentCourse resolves the course owning an assessment, directly or
// through its module.
func assessmentCourse(a *courseModels.Assessment) (*courseModels.Course, error) {
	db := database.Database.Db

	var courseID uint
	if a.CourseID != nil {
		courseID = *a.CourseID
	} else if a.ModuleID != nil {
		var mod courseModels.Module
		if err := db.Where("id = ? AND is_deleted = ?", *a.ModuleID, false).First(&mod).Error; err != nil {
			return nil, err
		}
		courseID = mod.CourseID
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}
