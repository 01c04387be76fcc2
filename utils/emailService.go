package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"learnly/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learnly Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B1F5E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B1F5E; line-height: 1.6; }
			.content h2 { color: #1B1F5E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #3FB984; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3FB984; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNLY ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learnly Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Learnly Academy"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Learnly Academy</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse our courses and start learning.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Course Approved (To Instructor)
func SendCourseApprovedEmail(email, name, courseTitle string) {
	subject := "Course Published: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Great news! Your course <strong>%s</strong> has been APPROVED and is now live.</p>
		<p>Students can now enroll and start learning.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Approved", body))
}

// 3. Course Rejected (To Instructor)
func SendCourseRejectedEmail(email, name, courseTitle, reason string) {
	subject := "Course Rejected: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your course <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>Please make the necessary changes and submit it again.</p>
	`, name, courseTitle, reason)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Rejected", body))
}

// 4. Certificate Issued (To Student)
func SendCertificateIssuedEmail(email, name, courseTitle, verificationCode string, finalGrade float64) {
	subject := "Your Certificate: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong> with a final grade of <strong>%.1f</strong>.</p>
		<div class="info-box">
			<strong>Verification code:</strong> %s<br>
			Anyone can verify your certificate with this code.
		</div>
		<a href="#" class="btn">View Certificate</a>
	`, name, courseTitle, finalGrade, verificationCode)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Issued", body))
}

// 5. Pending Grading Reminder (To Instructor)
func SendGradingReminderEmail(email, name string, pendingCount int64) {
	subject := "Submissions Awaiting Your Grading"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have <strong>%d</strong> student submission(s) waiting for a manual grade for more than a day.</p>
		<p>Students cannot receive their final grades or certificates until grading is complete.</p>
		<a href="#" class="btn">Grade Submissions</a>
	`, name, pendingCount)

	go SendEmail([]string{email}, subject, getEmailTemplate("Grading Reminder", body))
}

// 6. Subscription Activated
func SendSubscriptionActivatedEmail(email, name, plan string) {
	subject := "Subscription Activated"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> subscription is now active.</p>
		<p>Enjoy unlimited access to every published course.</p>
	`, name, plan)

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Active", body))
}

// 7. Login Notification
func SendLoginNotificationEmail(email, name, ip, device, timeStr string) {
	subject := "New Login Alert"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We noticed a new login to your account.</p>
		<div class="info-box" style="background: #FFFFFF; border: 1px solid #E0E0E0; border-left: 4px solid #3FB984;">
			<ul style="list-style: none; padding: 0; margin: 0;">
				<li style="margin-bottom: 8px;"><strong>Time:</strong> %s</li>
				<li style="margin-bottom: 8px;"><strong>IP Address:</strong> %s</li>
				<li><strong>Device:</strong> %s</li>
			</ul>
		</div>
		<p>If this was you, you can safely ignore this email.</p>
		<p style="color: #DC3545; font-weight: bold;">If you did not authorize this login, please contact support immediately.</p>
	`, name, timeStr, ip, device)

	go SendEmail([]string{email}, subject, getEmailTemplate("New Login Detected", body))
}
