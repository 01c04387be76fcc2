package assessment

import (
	"encoding/json"
	"errors"
	"time"

	courseModels "learnly/models/course"

	"gorm.io/gorm"
)

// SubmitAssessment records a student's submission, grades every objective
// answer and finalizes the score when no manual grading is pending. A
// second submission for the same (student, assessment) is rejected without
// touching the original.
func SubmitAssessment(db *gorm.DB, userID, assessmentID uint, answers []AnswerInput) (*courseModels.StudentAssessment, error) {
	var submission courseModels.StudentAssessment

	err := db.Transaction(func(tx *gorm.DB) error {
		var a courseModels.Assessment
		if err := tx.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&a).Error; err != nil {
			return err
		}

		var existing courseModels.StudentAssessment
		err := tx.Where("user_id = ? AND assessment_id = ? AND is_deleted = ?",
			userID, assessmentID, false).First(&existing).Error
		if err == nil {
			return alreadySubmitted(&existing)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var questions []courseModels.Question
		if err := lockQuestions(tx).
			Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
			Order("order_index asc, id asc").
			Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return newError(KindStructural, CodeAssessmentsWithoutQuestions,
				"Assessment has no questions.",
				map[string]interface{}{"assessment_id": assessmentID})
		}

		answerFor := make(map[uint]AnswerInput, len(answers))
		for _, in := range answers {
			answerFor[in.QuestionID] = in
		}

		submission = courseModels.StudentAssessment{
			UserID:       userID,
			AssessmentID: assessmentID,
			Status:       courseModels.SubmissionSubmitted,
			SubmittedAt:  time.Now(),
		}
		if err := tx.Create(&submission).Error; err != nil {
			// The unique (user, assessment) index may have fired under a
			// concurrent submission; surface it as the same rejection.
			var winner courseModels.StudentAssessment
			if e := tx.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
				First(&winner).Error; e == nil {
				return alreadySubmitted(&winner)
			}
			return err
		}

		total := 0.0
		allAuto := true
		for _, q := range questions {
			in := answerFor[q.ID]
			in.QuestionID = q.ID
			result := GradeAnswer(q, in)

			payload, err := json.Marshal(in)
			if err != nil {
				return err
			}
			answer := courseModels.StudentAnswer{
				StudentAssessmentID: submission.ID,
				QuestionID:          q.ID,
				Answer:              payload,
				IsAutoGraded:        result.IsAutoGraded,
			}
			if result.IsAutoGraded {
				answer.AwardedPoints = result.AwardedPoints
				total += *result.AwardedPoints
			} else {
				allAuto = false
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}

		if allAuto {
			now := time.Now()
			submission.Score = &total
			submission.Status = courseModels.SubmissionGraded
			submission.GradedAt = &now
			if err := tx.Save(&submission).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// RecordManualScore stores an instructor's score for one essay answer and
// finalizes the submission once every answer is scored. The score must lie
// in [0, question.points].
func RecordManualScore(db *gorm.DB, studentAssessmentID, questionID uint, score float64) (*courseModels.StudentAssessment, error) {
	var submission courseModels.StudentAssessment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", studentAssessmentID, false).
			First(&submission).Error; err != nil {
			return err
		}
		if submission.Status == courseModels.SubmissionGraded {
			return newError(KindStateConflict, CodeSubmissionAlreadyGraded,
				"Submission is already graded.",
				map[string]interface{}{"student_assessment_id": submission.ID})
		}

		var answer courseModels.StudentAnswer
		if err := tx.Where("student_assessment_id = ? AND question_id = ? AND is_deleted = ?",
			studentAssessmentID, questionID, false).First(&answer).Error; err != nil {
			return err
		}
		if answer.IsAutoGraded {
			return newError(KindStateConflict, CodeAnswerNotManuallyGradable,
				"Answer was graded automatically.",
				map[string]interface{}{"question_id": questionID})
		}

		var question courseModels.Question
		if err := tx.Where("id = ?", questionID).First(&question).Error; err != nil {
			return err
		}
		if score < 0 || score > question.Points {
			return newError(KindStructural, CodeScoreOutOfRange,
				"Score must lie between zero and the question's points.",
				map[string]interface{}{"score": score, "max": question.Points})
		}

		if err := tx.Model(&answer).Update("awarded_points", score).Error; err != nil {
			return err
		}

		// Finalize when the last ungraded answer receives its score.
		var pending int64
		if err := tx.Model(&courseModels.StudentAnswer{}).
			Where("student_assessment_id = ? AND awarded_points IS NULL AND is_deleted = ?",
				studentAssessmentID, false).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return nil
		}

		var answers []courseModels.StudentAnswer
		if err := tx.Where("student_assessment_id = ? AND is_deleted = ?",
			studentAssessmentID, false).Find(&answers).Error; err != nil {
			return err
		}
		total := 0.0
		for _, ans := range answers {
			total += *ans.AwardedPoints
		}

		now := time.Now()
		submission.Score = &total
		submission.Status = courseModels.SubmissionGraded
		submission.GradedAt = &now
		return tx.Save(&submission).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// PendingQuestionIDs lists the question ids still awaiting a manual score
// on a submission.
func PendingQuestionIDs(db *gorm.DB, studentAssessmentID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&courseModels.StudentAnswer{}).
		Where("student_assessment_id = ? AND awarded_points IS NULL AND is_deleted = ?",
			studentAssessmentID, false).
		Order("question_id asc").
		Pluck("question_id", &ids).Error
	return ids, err
}

func alreadySubmitted(existing *courseModels.StudentAssessment) *Error {
	details := map[string]interface{}{
		"student_assessment_id": existing.ID,
		"status":                existing.Status,
	}
	if existing.Score != nil {
		details["score"] = *existing.Score
	}
	return newError(KindStateConflict, CodeAssessmentAlreadySubmitted,
		"Assessment was already submitted.", details)
}
