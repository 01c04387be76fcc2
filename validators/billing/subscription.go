package billingValidator

import (
	"learnly/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubscribeRequest is a plan purchase request.
type SubscribeRequest struct {
	Plan   string `json:"plan" validate:"required,oneof=MONTHLY YEARLY"`
	Method string `json:"method" validate:"required,oneof=PIX CARD"`
}

// WebhookRequest is a gateway charge status notification.
type WebhookRequest struct {
	ChargeID string `json:"charge_id" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=paid failed"`
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = fe.Field() + " is required!"
			case "oneof":
				errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param()
			default:
				errors[fe.Field()] = "Invalid value for " + fe.Field() + "!"
			}
		}
	}
	return errors
}

// Subscribe validates a subscription purchase request
func Subscribe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubscribeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSubscription", reqData)
		return c.Next()
	}
}

// Webhook validates a payment gateway notification
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebhookRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
