package tests

import (
	"fmt"
	"net/http"
	"testing"
)

func TestResend(t *testing.T) {

	// Arrange
	sent := sendOTP(t, uniqueMsisdn())

	// Act
	status, body := doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/otp/%d/resend", sent.OTPID), nil)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		OTPID      int64 `json:"otp_id"`
		Deliveries []struct {
			Channel        string `json:"channel"`
			DeliveryStatus string `json:"delivery_status"`
		} `json:"deliveries"`
	}
	decodeSuccess(t, body, &data)
	if len(data.Deliveries) == 0 {
		t.Fatal("resend returned no deliveries")
	}
}

func TestResendSpecificChannel(t *testing.T) {

	// Arrange
	sent := sendOTP(t, uniqueMsisdn())

	// Act
	status, body := doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/otp/%d/resend?channel=SMS", sent.OTPID), nil)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Deliveries []struct {
			Channel string `json:"channel"`
		} `json:"deliveries"`
	}
	decodeSuccess(t, body, &data)
	if len(data.Deliveries) != 1 || data.Deliveries[0].Channel != "SMS" {
		t.Fatalf("deliveries = %+v, want single SMS delivery", data.Deliveries)
	}
}

func TestResendUnknownOTP(t *testing.T) {

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/otp/999999999999/resend", nil)

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("resend returned status=%d, want 404", status)
	}
}
