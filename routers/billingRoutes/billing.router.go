package billingRoutes

import (
	controllers "learnly/controllers/billing"
	"learnly/middleware"
	validators "learnly/validators/billing"

	"github.com/gofiber/fiber/v2"
)

func SetupBillingRoutes(app *fiber.App) {
	billingGroup := app.Group("/billing")

	billingGroup.Post("/subscribe", middleware.JWTMiddleware, validators.Subscribe(), controllers.Subscribe)
	billingGroup.Get("/subscription", middleware.JWTMiddleware, controllers.GetMySubscription)
	billingGroup.Post("/subscription/cancel", middleware.JWTMiddleware, controllers.CancelSubscription)

	// Gateway callback, authenticated by charge lookup not JWT
	billingGroup.Post("/webhook", validators.Webhook(), controllers.PaymentWebhook)
}
