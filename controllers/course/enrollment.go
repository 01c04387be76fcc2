package controllers

import (
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	billingModels "learnly/models/billing"
	courseModels "learnly/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the logged-in student into a published course.
// Enrollment requires an active subscription.
func EnrollInCourse(c *fiber.Ctx) error {
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

	if course.Status != courseModels.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not open for enrollment!", nil)
	}

	var subscription billingModels.Subscription
	if err := database.Database.Db.Where("user_id = ? AND status = ? AND is_deleted = ?", userId, billingModels.SubscriptionActive, false).First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "An active subscription is required to enroll!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", existing)
	}

	var totalLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalLessons)

	enrollment := courseModels.Enrollment{
		UserID:       userId,
		CourseID:     uint(courseID),
		Status:       courseModels.EnrollmentEnrolled,
		TotalLessons: int(totalLessons),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// GetEnrollments lists the logged-in student's enrollments
func GetEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle string `json:"course_title"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enrollment := range enrollments {
		var course courseModels.Course
		database.Database.Db.Select("title").Where("id = ?", enrollment.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{Enrollment: enrollment, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
	})
}
