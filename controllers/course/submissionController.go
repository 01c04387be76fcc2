package controllers

import (
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	courseModels "learnly/models/course"
	"learnly/services/assessment"

	"github.com/gofiber/fiber/v2"
)

// SubmitAssessment receives a student's answers, grades the automatic part
// and stores the submission.
func SubmitAssessment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Answers []struct {
			QuestionID     uint   `json:"question_id"`
			SelectedOption *int   `json:"selected_option"`
			Text           string `json:"text"`
		} `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// The student must be enrolled in the course owning the assessment
	var target courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	course, err := assessmentCourse(&target)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	answers := make([]assessment.AnswerInput, len(reqData.Answers))
	for i, a := range reqData.Answers {
		answers[i] = assessment.AnswerInput{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			Text:           a.Text,
		}
	}

	submission, err := assessment.SubmitAssessment(database.Database.Db, userId, uint(assessmentID), answers)
	if err != nil {
		if resp, handled := ruleErrorResponse(c, err); handled {
			return resp
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assessment!", nil)
	}

	message := "Assessment submitted and graded!"
	if submission.Status == courseModels.SubmissionSubmitted {
		message = "Assessment submitted! Essay answers await manual grading."
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, fiber.Map{
		"submission_id": submission.ID,
		"status":        submission.Status,
		"score":         submission.Score,
		"submitted_at":  submission.SubmittedAt,
	})
}

// GetMySubmission returns the student's submission for an assessment,
// including which questions still await a manual score.
func GetMySubmission(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	var submission courseModels.StudentAssessment
	if err := database.Database.Db.Where("user_id = ? AND assessment_id = ? AND is_deleted = ?", userId, assessmentID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submission found for this assessment!", nil)
	}

	var answers []courseModels.StudentAnswer
	if err := database.Database.Db.Where("student_assessment_id = ? AND is_deleted = ?", submission.ID, false).Find(&answers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch answers!", nil)
	}

	pending, err := assessment.PendingQuestionIDs(database.Database.Db, submission.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", fiber.Map{
		"submission":        submission,
		"answers":           answers,
		"pending_questions": pending,
	})
}

// GetMyCourseGrade reports the student's current final grade for a course.
// The grade stays null until every assessment in the course is graded.
func GetMyCourseGrade(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	grade, err := assessment.ComputeFinalGrade(database.Database.Db, userId, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute final grade!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final grade fetched successfully!", fiber.Map{
		"final_grade":   grade,
		"passing_score": course.PassingScore,
		"progress":      enrollment.Progress,
	})
}
