package utils

import (
	"log"
	"time"

	"learnly/database"
	"learnly/models"
	"learnly/models/billing"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to check expiring subscriptions
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiringSubscriptions []billing.Subscription
	if err := db.
		Where("status = ? AND reminder_sent = false AND expires_at IS NOT NULL", billing.SubscriptionActive).
		Where("expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiringSubscriptions).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiringSubscriptions))

	for _, sub := range expiringSubscriptions {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		SendSubscriptionExpiryReminder(user.Email, user.Name, sub.Plan, sub.ExpiresAt)

		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, user.Email)
	}
}

// ExpireSubscriptions marks expired subscriptions as EXPIRED
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&billing.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", billing.SubscriptionActive, now).
		Updates(map[string]interface{}{"status": billing.SubscriptionExpired})

	if result.Error != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", result.RowsAffected)

		var expiredSubscriptions []billing.Subscription
		db.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", billing.SubscriptionExpired, now).
			Where("updated_at > ?", now.Add(-time.Hour)). // Only recently expired
			Find(&expiredSubscriptions)

		for _, sub := range expiredSubscriptions {
			var user models.User
			if err := db.Where("id = ?", sub.UserID).First(&user).Error; err == nil {
				SendSubscriptionExpiredEmail(user.Email, user.Name, sub.Plan)
			}
		}
	}
}

// SendSubscriptionExpiryReminder sends an email reminder before subscription expires
func SendSubscriptionExpiryReminder(email, name, plan string, expiresAt *time.Time) {
	expiryStr := "soon"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	subject := "Your Learnly Subscription is Expiring Soon!"
	body := `
		<p>Dear ` + name + `,</p>
		<p>Your <strong>` + plan + `</strong> subscription is expiring on <strong>` + expiryStr + `</strong>.</p>
		<p>To keep access to your courses and progress, please renew your subscription before it expires.</p>
		<a href="#" class="btn">Renew Now</a>
	`

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Expiring Soon", body))
}

// SendSubscriptionExpiredEmail sends an email when subscription has expired
func SendSubscriptionExpiredEmail(email, name, plan string) {
	subject := "Your Learnly Subscription Has Expired"
	body := `
		<p>Dear ` + name + `,</p>
		<p>Your <strong>` + plan + `</strong> subscription has expired.</p>
		<p>Your enrollments and progress are safe, but course access is paused until you renew.</p>
		<a href="#" class="btn">Renew Subscription</a>
	`

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Expired", body))
}
