package controllers

import (
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	courseModels "learnly/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedCourses lists published courses for students, paginated
func GetPublishedCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
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

	var courses []courseModels.Course
	var total int64

	query := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", courseModels.CoursePublished, false)

	query.Count(&total)

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetCourseDetails returns a published course with its modules, lessons
// and assessments
func GetCourseDetails(c *fiber.Ctx) error {
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
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.CoursePublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type ModuleDetails struct {
		courseModels.Module
		Lessons     []courseModels.Lesson     `json:"lessons"`
		Assessments []courseModels.Assessment `json:"assessments"`
	}

	moduleDetails := make([]ModuleDetails, len(modules))
	for i, mod := range modules {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).Order("order_index asc").Find(&lessons)

		var assessments []courseModels.Assessment
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).Find(&assessments)

		moduleDetails[i] = ModuleDetails{Module: mod, Lessons: lessons, Assessments: assessments}
	}

	// Legacy layouts attach assessments directly to the course
	var courseAssessments []courseModels.Assessment
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&courseAssessments)

	var enrollment courseModels.Enrollment
	enrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&enrollment).Error == nil

	response := fiber.Map{
		"course":             course,
		"modules":            moduleDetails,
		"course_assessments": courseAssessments,
		"enrolled":           enrolled,
	}
	if enrolled {
		response["progress"] = enrollment.Progress
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
