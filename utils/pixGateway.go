package utils

import (
	"fmt"
	"log"
	"time"

	"learnly/config"

	"github.com/go-resty/resty/v2"
)

// PixChargeRequest is the payload sent to the payment gateway.
type PixChargeRequest struct {
	Amount         float64 `json:"amount"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	IdempotencyKey string  `json:"idempotency_key"`
	Description    string  `json:"description"`
}

// PixChargeResponse mirrors the gateway's charge resource.
type PixChargeResponse struct {
	ChargeID string `json:"charge_id"`
	QrCode   string `json:"qr_code"` // PIX copy-and-paste payload
	Status   string `json:"status"`  // pending, paid, failed
}

func pixClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.PixGatewayURL).
		SetAuthToken(config.AppConfig.PixGatewayKey).
		SetTimeout(10 * time.Second)
}

// CreatePixCharge creates a PIX charge at the gateway and returns its id
// and QR code payload.
func CreatePixCharge(reqData PixChargeRequest) (*PixChargeResponse, error) {
	var chargeResp PixChargeResponse

	resp, err := pixClient().R().
		SetBody(reqData).
		SetResult(&chargeResp).
		Post("/charges/pix")
	if err != nil {
		log.Printf("Error creating PIX charge: %v", err)
		return nil, err
	}
	if resp.IsError() {
		log.Printf("PIX gateway returned %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("pix gateway error, code: %d", resp.StatusCode())
	}

	return &chargeResp, nil
}

// GetPixChargeStatus fetches the current status of a charge.
func GetPixChargeStatus(chargeID string) (*PixChargeResponse, error) {
	var chargeResp PixChargeResponse

	resp, err := pixClient().R().
		SetResult(&chargeResp).
		Get("/charges/pix/" + chargeID)
	if err != nil {
		log.Printf("Error fetching PIX charge %s: %v", chargeID, err)
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pix gateway error, code: %d", resp.StatusCode())
	}

	return &chargeResp, nil
}
