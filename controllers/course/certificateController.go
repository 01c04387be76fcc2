package controllers

import (
	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	courseModels "learnly/models/course"
	"learnly/services/assessment"
	"learnly/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate issues a certificate for a completed, passed course.
// Requesting again simply returns the already-issued certificate.
func RequestCertificate(c *fiber.Ctx) error {
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

	var existing courseModels.Certificate
	alreadyIssued := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).First(&existing).Error == nil

	cert, err := assessment.IssueCertificate(database.Database.Db, userId, uint(courseID))
	if err != nil {
		if resp, handled := ruleErrorResponse(c, err); handled {
			return resp
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if !alreadyIssued {
		go utils.SendCertificateIssuedEmail(user.Email, user.Name, course.Title, cert.VerificationCode, cert.FinalGrade)
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", cert)
}

// GetUserCertificates lists the logged-in student's certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	// Attach course titles
	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Select("title").Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{Certificate: cert, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
	})
}

// VerifyCertificate is a public endpoint resolving a verification code to
// the certificate it belongs to.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
	}

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("verification_code = ? AND is_deleted = ?", code, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Select("title", "author").Where("id = ?", cert.CourseID).First(&course)

	var holder models.User
	database.Database.Db.Select("name").Where("id = ?", cert.UserID).First(&holder)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"holder_name":       holder.Name,
		"course_title":      course.Title,
		"final_grade":       cert.FinalGrade,
		"issued_at":         cert.IssuedAt,
		"verification_code": cert.VerificationCode,
	})
}
