package controllers

import (
	"fmt"
	"time"

	"learnly/database"
	"learnly/middleware"
	"learnly/models"
	billingModels "learnly/models/billing"
	"learnly/utils"
	billingValidator "learnly/validators/billing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// Plan prices in BRL
const (
	monthlyPrice = 49.90
	yearlyPrice  = 499.00
)

// periodEnd computes the subscription expiry for a plan, snapped to the
// end of the final day so a subscription never lapses mid-day.
func periodEnd(plan string, from time.Time) time.Time {
	var raw time.Time
	if plan == "YEARLY" {
		raw = from.AddDate(1, 0, 0)
	} else {
		raw = from.AddDate(0, 1, 0)
	}
	return now.With(raw).EndOfDay()
}

// Subscribe creates a pending subscription and a PIX charge for it
func Subscribe(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSubscription").(*billingValidator.SubscribeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// One active or pending subscription at a time
	var existing billingModels.Subscription
	if err := database.Database.Db.Where("user_id = ? AND status IN ? AND is_deleted = ?",
		userId, []string{billingModels.SubscriptionActive, billingModels.SubscriptionPending}, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active or pending subscription!", existing)
	}

	amount := monthlyPrice
	if reqData.Plan == "YEARLY" {
		amount = yearlyPrice
	}

	subscription := billingModels.Subscription{
		UserID: userId,
		Plan:   reqData.Plan,
		Status: billingModels.SubscriptionPending,
	}

	if err := database.Database.Db.Create(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	charge := billingModels.PaymentCharge{
		UserID:         userId,
		SubscriptionID: subscription.ID,
		Method:         reqData.Method,
		Amount:         amount,
		Status:         billingModels.ChargePending,
	}

	if reqData.Method == billingModels.MethodPix {
		gatewayResp, err := utils.CreatePixCharge(utils.PixChargeRequest{
			Amount:         amount,
			CustomerName:   user.Name,
			CustomerEmail:  user.Email,
			IdempotencyKey: uuid.NewString(),
			Description:    fmt.Sprintf("Learnly %s subscription", reqData.Plan),
		})
		if err != nil {
			database.Database.Db.Delete(&subscription)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway unavailable, try again later!", nil)
		}
		charge.GatewayChargeID = gatewayResp.ChargeID
		charge.PixQrCode = gatewayResp.QrCode
	}

	if err := database.Database.Db.Create(&charge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment charge!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription created! Complete the payment to activate.", fiber.Map{
		"subscription": subscription,
		"charge": fiber.Map{
			"id":          charge.ID,
			"amount":      charge.Amount,
			"method":      charge.Method,
			"pix_qr_code": charge.PixQrCode,
			"status":      charge.Status,
		},
	})
}

// PaymentWebhook receives charge status updates from the payment gateway.
// A paid charge activates its subscription.
func PaymentWebhook(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWebhook").(*billingValidator.WebhookRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var charge billingModels.PaymentCharge
	if err := database.Database.Db.Where("gateway_charge_id = ? AND is_deleted = ?", reqData.ChargeID, false).First(&charge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Charge not found!", nil)
	}

	// Already settled, webhook retries are no-ops
	if charge.Status != billingModels.ChargePending {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Charge already processed!", nil)
	}

	switch reqData.Status {
	case "paid":
		// Never trust the webhook body alone, confirm with the gateway
		gatewayResp, err := utils.GetPixChargeStatus(charge.GatewayChargeID)
		if err != nil || gatewayResp.Status != "paid" {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Charge not confirmed as paid by gateway!", nil)
		}

		paidAt := time.Now()
		charge.Status = billingModels.ChargePaid
		charge.PaidAt = &paidAt
		if err := database.Database.Db.Save(&charge).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update charge!", nil)
		}

		var subscription billingModels.Subscription
		if err := database.Database.Db.Where("id = ?", charge.SubscriptionID).First(&subscription).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
		}

		startsAt := time.Now()
		expiresAt := periodEnd(subscription.Plan, startsAt)
		subscription.Status = billingModels.SubscriptionActive
		subscription.StartsAt = &startsAt
		subscription.ExpiresAt = &expiresAt
		if err := database.Database.Db.Save(&subscription).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate subscription!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ?", subscription.UserID).First(&user).Error; err == nil {
			go utils.SendSubscriptionActivatedEmail(user.Email, user.Name, subscription.Plan)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription activated!", nil)

	case "failed":
		charge.Status = billingModels.ChargeFailed
		database.Database.Db.Save(&charge)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Charge marked as failed!", nil)

	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown charge status!", nil)
	}
}

// GetMySubscription returns the logged-in user's latest subscription
func GetMySubscription(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var subscription billingModels.Subscription
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).Order("created_at desc").First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No subscription found!", nil)
	}

	var charges []billingModels.PaymentCharge
	database.Database.Db.Where("subscription_id = ? AND is_deleted = ?", subscription.ID, false).Order("created_at desc").Find(&charges)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched successfully!", fiber.Map{
		"subscription": subscription,
		"charges":      charges,
	})
}

// CancelSubscription cancels the user's active subscription
func CancelSubscription(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var subscription billingModels.Subscription
	if err := database.Database.Db.Where("user_id = ? AND status IN ? AND is_deleted = ?",
		userId, []string{billingModels.SubscriptionActive, billingModels.SubscriptionPending}, false).First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active subscription found!", nil)
	}

	subscription.Status = billingModels.SubscriptionCancelled
	if err := database.Database.Db.Save(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription cancelled!", subscription)
}
