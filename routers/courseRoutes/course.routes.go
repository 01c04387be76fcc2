package courseRoutes

import (
	controllers "learnly/controllers/course"
	"learnly/middleware"
	validators "learnly/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course browsing
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.AdminCourseList(), controllers.GetPublishedCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/grade", middleware.JWTMiddleware, validators.CourseID(), controllers.GetMyCourseGrade)

	// Lesson completion
	lessonGroup := app.Group("/lesson")
	lessonGroup.Post("/:lessonId/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonComplete)

	// Assessment submission
	assessmentGroup := app.Group("/assessment")
	assessmentGroup.Post("/:assessmentId/submit", middleware.JWTMiddleware, validators.SubmitAssessment(), controllers.SubmitAssessment)
	assessmentGroup.Get("/:assessmentId/submission", middleware.JWTMiddleware, validators.AssessmentID(), controllers.GetMySubmission)

	// Enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	// Public certificate verification
	app.Get("/certificate/verify/:code", controllers.VerifyCertificate)
}
