package courseValidator

import (
	"strings"

	"learnly/middleware"
	courseModels "learnly/models/course"

	"github.com/gofiber/fiber/v2"
)

// ============ Assessment Validators ============

// CreateAssessment validates assessment creation. Exactly one owner,
// course or module, must be set; the ownership rules themselves are
// checked further down in the service layer.
func CreateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string `json:"title"`
			Type     string `json:"type"`
			CourseID *uint  `json:"course_id"`
			ModuleID *uint  `json:"module_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		switch reqData.Type {
		case courseModels.AssessmentMultipleChoice, courseModels.AssessmentEssay, courseModels.AssessmentMixed:
		default:
			errors["type"] = "Type must be MULTIPLE_CHOICE, ESSAY, or MIXED!"
		}

		if reqData.CourseID == nil && reqData.ModuleID == nil {
			errors["owner"] = "Either course_id or module_id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}

// AssessmentID validates requests that only carry an assessment id
func AssessmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, ok := parseIDParam(c, "assessmentId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		c.Locals("assessmentID", assessmentID)
		return c.Next()
	}
}

// ============ Question Validators ============

// AddQuestion validates question creation under an assessment
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, ok := parseIDParam(c, "assessmentId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		reqData := new(struct {
			Text          string   `json:"text"`
			Type          string   `json:"type"`
			Options       []string `json:"options"`
			CorrectOption *int     `json:"correct_option"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Text = strings.TrimSpace(reqData.Text)
		if len(reqData.Text) < 5 {
			errors["text"] = "Question text must be at least 5 characters long!"
		}

		switch reqData.Type {
		case courseModels.QuestionMultipleChoice:
			if len(reqData.Options) < 2 {
				errors["options"] = "Multiple choice questions need at least 2 options!"
			}
			if reqData.CorrectOption == nil {
				errors["correct_option"] = "Correct option is required for multiple choice questions!"
			} else if *reqData.CorrectOption < 0 || *reqData.CorrectOption >= len(reqData.Options) {
				errors["correct_option"] = "Correct option must index one of the options!"
			}
		case courseModels.QuestionEssay:
			if len(reqData.Options) > 0 || reqData.CorrectOption != nil {
				errors["options"] = "Essay questions cannot have options or a correct option!"
			}
		default:
			errors["type"] = "Type must be MULTIPLE_CHOICE or ESSAY!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("assessmentID", assessmentID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// QuestionID validates requests carrying assessment and question ids
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, ok := parseIDParam(c, "assessmentId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		questionID, ok := parseIDParam(c, "questionId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("assessmentID", assessmentID)
		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// ============ Submission Validators ============

// SubmitAssessment validates a student's answer sheet
func SubmitAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, ok := parseIDParam(c, "assessmentId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		reqData := new(struct {
			Answers []struct {
				QuestionID     uint   `json:"question_id"`
				SelectedOption *int   `json:"selected_option"`
				Text           string `json:"text"`
			} `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, answer := range reqData.Answers {
			if answer.QuestionID == 0 {
				errors["answers"] = "Every answer must reference a question!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("assessmentID", assessmentID)
		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// ManualScore validates an instructor's essay score
func ManualScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		submissionID, ok := parseIDParam(c, "submissionId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Submission ID!", nil)
		}

		reqData := new(struct {
			QuestionID uint    `json:"question_id"`
			Score      float64 `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionID == 0 {
			errors["question_id"] = "Question ID is required!"
		}

		if reqData.Score < 0 {
			errors["score"] = "Score cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("submissionID", submissionID)
		c.Locals("validatedManualScore", reqData)
		return c.Next()
	}
}
