package utils

import (
	"log"
	"time"

	"learnly/database"
	"learnly/models"
	courseModels "learnly/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeGradingScheduler sets up the pending-grading reminder job
func InitializeGradingScheduler() {
	log.Println("[GRADING-SCHEDULER] Initializing grading reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM to nudge instructors about stale submissions
	c.AddFunc("0 8 * * *", func() {
		log.Println("[GRADING-SCHEDULER] Running daily pending-grading check...")
		RemindPendingGrading()
	})

	c.Start()
	log.Println("[GRADING-SCHEDULER] Grading scheduler started - runs daily at 8 AM")
}

// RemindPendingGrading emails every instructor/admin a count of submissions
// stuck waiting for a manual grade for more than a day.
func RemindPendingGrading() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	var pendingCount int64
	if err := db.Model(&courseModels.StudentAssessment{}).
		Where("status = ? AND submitted_at < ? AND is_deleted = ?",
			courseModels.SubmissionSubmitted, cutoff, false).
		Count(&pendingCount).Error; err != nil {
		log.Printf("[GRADING-SCHEDULER] Error counting pending submissions: %v", err)
		return
	}

	if pendingCount == 0 {
		log.Println("[GRADING-SCHEDULER] No stale submissions pending manual grading")
		return
	}

	var graders []models.User
	if err := db.Where("role IN ? AND is_deleted = ?",
		[]string{"INSTRUCTOR", "ADMIN"}, false).Find(&graders).Error; err != nil {
		log.Printf("[GRADING-SCHEDULER] Error fetching graders: %v", err)
		return
	}

	for _, grader := range graders {
		SendGradingReminderEmail(grader.Email, grader.Name, pendingCount)
	}
	log.Printf("[GRADING-SCHEDULER] Reminded %d graders about %d pending submissions", len(graders), pendingCount)
}
