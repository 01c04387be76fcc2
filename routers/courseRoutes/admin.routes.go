package courseRoutes

import (
	controllers "learnly/controllers/course"
	"learnly/middleware"
	validators "learnly/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD and publication workflow
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.AdminCourseList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/:id/submit", middleware.JWTMiddleware, validators.CourseID(), controllers.SubmitCourseForApproval)
	adminGroup.Post("/:id/approve", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CourseID(), controllers.AdminApproveCourse)
	adminGroup.Post("/:id/reject", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.RejectCourse(), controllers.AdminRejectCourse)

	// Module management
	adminGroup.Post("/:id/module", middleware.JWTMiddleware, validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Put("/:id/module/:moduleId", middleware.JWTMiddleware, validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:id/module/:moduleId", middleware.JWTMiddleware, validators.ModuleID(), controllers.AdminDeleteModule)
	adminGroup.Get("/:id/modules", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminListModules)

	// Lesson management
	moduleGroup := app.Group("/admin/module")
	moduleGroup.Post("/:moduleId/lesson", middleware.JWTMiddleware, validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/admin/lesson")
	lessonGroup.Put("/:lessonId", middleware.JWTMiddleware, validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lessonId", middleware.JWTMiddleware, validators.LessonID(), controllers.AdminDeleteLesson)

	// Assessment and question management
	assessmentGroup := app.Group("/admin/assessment")
	assessmentGroup.Post("/create", middleware.JWTMiddleware, validators.CreateAssessment(), controllers.AdminCreateAssessment)
	assessmentGroup.Get("/:assessmentId", middleware.JWTMiddleware, validators.AssessmentID(), controllers.AdminGetAssessment)
	assessmentGroup.Delete("/:assessmentId", middleware.JWTMiddleware, validators.AssessmentID(), controllers.AdminDeleteAssessment)
	assessmentGroup.Post("/:assessmentId/question", middleware.JWTMiddleware, validators.AddQuestion(), controllers.AdminAddQuestion)
	assessmentGroup.Delete("/:assessmentId/question/:questionId", middleware.JWTMiddleware, validators.QuestionID(), controllers.AdminDeleteQuestion)

	// Manual grading
	gradingGroup := app.Group("/admin/grading")
	gradingGroup.Get("/pending", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), validators.AdminCourseList(), controllers.ListPendingGrading)
	gradingGroup.Post("/:submissionId/score", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), validators.ManualScore(), controllers.GradeEssayAnswer)
}
