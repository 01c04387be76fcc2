package controllers

import (
	"encoding/json"

	"learnly/config"
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateAssessment creates an assessment owned by a module (or, for
// legacy course layouts, directly by the course).
func AdminCreateAssessment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	reqData, ok := c.Locals("validatedAssessment").(*struct {
		Title    string `json:"title"`
		Type     string `json:"type"`
		CourseID *uint  `json:"course_id"`
		ModuleID *uint  `json:"module_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	newAssessment := courseModels.Assessment{
		Title:    reqData.Title,
		Type:     reqData.Type,
		CourseID: reqData.CourseID,
		ModuleID: reqData.ModuleID,
	}

	course, err := assessmentCourse(&newAssessment)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course or module not found!", nil)
	}

	if course.Status == courseModels.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Published courses cannot be restructured!", nil)
	}

	if err := assessment.ValidateAssessmentOwner(database.Database.Db, &newAssessment); err != nil {
		if resp, handled := ruleErrorResponse(c, err); handled {
			return resp
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate assessment!", nil)
	}

	if err := database.Database.Db.Create(&newAssessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", newAssessment)
}

// AdminGetAssessment returns an assessment along with its questions
func AdminGetAssessment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	var target courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	var questions []courseModels.Question
	if err := database.Database.Db.Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment fetched successfully!", fiber.Map{
		"assessment": target,
		"questions":  questions,
	})
}

// AdminDeleteAssessment soft deletes an assessment and its questions
func AdminDeleteAssessment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	var target courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	course, err := assessmentCourse(&target)
	if err == nil && course.Status == courseModels.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Published courses cannot be restructured!", nil)
	}

	tx := database.Database.Db.Begin()

	target.IsDeleted = true
	if err := tx.Save(&target).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assessment!", nil)
	}

	if err := tx.Model(&courseModels.Question{}).Where("assessment_id = ?", assessmentID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete questions!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment deleted successfully!", nil)
}

// AdminAddQuestion appends a question to an assessment and rebalances the
// point distribution over all of its questions.
func AdminAddQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	var target courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	course, err := assessmentCourse(&target)
	if err == nil && course.Status == courseModels.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Published courses cannot be restructured!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text          string   `json:"text"`
		Type          string   `json:"type"`
		Options       []string `json:"options"`
		CorrectOption *int     `json:"correct_option"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var optionsJSON datatypes.JSON
	if reqData.Type == courseModels.QuestionMultipleChoice {
		raw, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question options!", nil)
		}
		optionsJSON = datatypes.JSON(raw)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.Question{}).Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	question := courseModels.Question{
		AssessmentID:  uint(assessmentID),
		Text:          reqData.Text,
		Type:          reqData.Type,
		Options:       optionsJSON,
		CorrectOption: reqData.CorrectOption,
		OrderIndex:    maxOrder + 1,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	if err := assessment.ReallocatePoints(database.Database.Db, uint(assessmentID), config.AppConfig.AssessmentPointBudget); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to rebalance question points!", nil)
	}

	// Return the question with its allocated points
	database.Database.Db.First(&question, question.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminDeleteQuestion soft deletes a question and rebalances the remaining
// points.
func AdminDeleteQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "INSTRUCTOR" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)
	questionID := c.Locals("questionID").(int)

	var target courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	course, err := assessmentCourse(&target)
	if err == nil && course.Status == courseModels.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Published courses cannot be restructured!", nil)
	}

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND assessment_id = ? AND is_deleted = ?", questionID, assessmentID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	if err := assessment.ReallocatePoints(database.Database.Db, uint(assessmentID), config.AppConfig.AssessmentPointBudget); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to rebalance question points!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
