package inbound

import (
	"time"

	"github.com/sendpin/sendpin/internal/otp/entity"
)

type SendRequest struct {
	Msisdn string `json:"msisdn"`
}

type SendResponse struct {
	OTPID          int64  `json:"otp_id"`
	CustomerID     int64  `json:"customer_id"`
	Msisdn         string `json:"msisdn"`
	DeliveryStatus string `json:"delivery_status"`
}

func (SendResponse) Message() string {
	return "One-time pin sent."
}

type DeliveryResponse struct {
	Channel        string `json:"channel"`
	DeliveryStatus string `json:"delivery_status"`
}

type ResendResponse struct {
	OTPID      int64              `json:"otp_id"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

func (ResendResponse) Message() string {
	return "One-time pin resent."
}

type ValidateRequest struct {
	Pin int32 `json:"pin"`
}

type ValidateResponse struct {
	OTPID        int64  `json:"otp_id"`
	Status       string `json:"status"`
	AttemptCount int32  `json:"attempt_count"`
}

func (ValidateResponse) Message() string {
	return "One-time pin verified."
}

type OTPResponse struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customer_id"`
	Msisdn        string `json:"msisdn"`
	Pin           int32  `json:"pin"`
	CreatedOn     string `json:"created_on"`
	Status        string `json:"status"`
	AttemptCount  int32  `json:"attempt_count"`
	ApplicationID int32  `json:"application_id"`
}

func newOTPResponse(otp entity.OTP) OTPResponse {
	return OTPResponse{
		ID:            otp.ID,
		CustomerID:    otp.CustomerID,
		Msisdn:        otp.Msisdn,
		Pin:           otp.Pin,
		CreatedOn:     otp.CreatedOn.Format(time.RFC3339),
		Status:        otp.Status.String(),
		AttemptCount:  otp.AttemptCount,
		ApplicationID: otp.ApplicationID,
	}
}

type ListResponse struct {
	OTPs []OTPResponse `json:"otps"`
}

type ExportResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	Count     int    `json:"count"`
}

func (ExportResponse) Message() string {
	return "Export ready."
}
