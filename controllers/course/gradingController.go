package controllers

import (
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/gofiber/fiber/v2"
)

// ListPendingGrading lists submissions still waiting on manual scores
func ListPendingGrading(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedAdminList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}

	offset := (page - 1) * limit

	var submissions []courseModels.StudentAssessment
	var total int64

	query := database.Database.Db.Model(&courseModels.StudentAssessment{}).
		Where("status = ? AND is_deleted = ?", courseModels.SubmissionSubmitted, false)

	query.Count(&total)

	if err := query.Order("submitted_at asc").Offset(offset).Limit(limit).Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	// Attach the pending questions of each submission
	type PendingSubmission struct {
		courseModels.StudentAssessment
		PendingQuestions []uint `json:"pending_questions"`
	}

	result := make([]PendingSubmission, len(submissions))
	for i, sub := range submissions {
		pending, err := assessment.PendingQuestionIDs(database.Database.Db, sub.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending questions!", nil)
		}
		result[i] = PendingSubmission{StudentAssessment: sub, PendingQuestions: pending}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending submissions fetched successfully!", fiber.Map{
		"submissions": result,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GradeEssayAnswer records a manual score for one essay answer. Once the
// last pending answer is scored the submission's final score is computed
// and it moves to GRADED.
func GradeEssayAnswer(c *fiber.Ctx) error {
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

	submissionID := c.Locals("submissionID").(int)

	reqData, ok := c.Locals("validatedManualScore").(*struct {
		QuestionID uint    `json:"question_id"`
		Score      float64 `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := assessment.RecordManualScore(database.Database.Db, uint(submissionID), reqData.QuestionID, reqData.Score)
	if err != nil {
		if resp, handled := ruleErrorResponse(c, err); handled {
			return resp
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record score!", nil)
	}

	message := "Score recorded!"
	if submission.Status == courseModels.SubmissionGraded {
		message = "Score recorded and submission fully graded!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"submission_id": submission.ID,
		"status":        submission.Status,
		"score":         submission.Score,
		"graded_at":     submission.GradedAt,
	})
}
