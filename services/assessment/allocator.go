package assessment

import (
	courseModels "learnly/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockQuestions takes row locks so concurrent question edits on the same
// assessment serialize. SQLite (used in tests) has no FOR UPDATE; its
// single-writer transactions already serialize.
func lockQuestions(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ReallocatePoints recomputes every question's point value on an
// assessment from scratch so the values sum to the fixed budget. It is
// idempotent: with an unchanged question set it rewrites nothing. With
// zero questions it is a no-op and the assessment stays invalid for
// course submission.
func ReallocatePoints(db *gorm.DB, assessmentID uint, budget float64) error {
	run := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			var questions []courseModels.Question
			if err := lockQuestions(tx).
				Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
				Order("order_index asc, id asc").
				Find(&questions).Error; err != nil {
				return err
			}

			if len(questions) == 0 {
				return nil
			}

			points := SplitBudget(budget, len(questions))
			for i := range questions {
				if questions[i].Points == points[i] {
					continue
				}
				if err := tx.Model(&questions[i]).Update("points", points[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Retry once on a serialization conflict before surfacing the error.
	if err := run(); err != nil {
		return run()
	}
	return nil
}
