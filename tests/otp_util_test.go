package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func uniqueMsisdn() string {
	return fmt.Sprintf("+62812%09d", time.Now().UnixNano()%1_000_000_000)
}

type otpData struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customer_id"`
	Msisdn        string `json:"msisdn"`
	Pin           int32  `json:"pin"`
	CreatedOn     string `json:"created_on"`
	Status        string `json:"status"`
	AttemptCount  int32  `json:"attempt_count"`
	ApplicationID int32  `json:"application_id"`
}

type sendData struct {
	OTPID          int64  `json:"otp_id"`
	CustomerID     int64  `json:"customer_id"`
	Msisdn         string `json:"msisdn"`
	DeliveryStatus string `json:"delivery_status"`
}

func sendOTP(t *testing.T, msisdn string) sendData {
	t.Helper()

	payload := map[string]string{"msisdn": msisdn}

	status, body := doJSON(t, http.MethodPost, "/api/v1/otp", payload)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("send failed: status=%d message=%q", status, errEnv.Message)
	}

	var data sendData
	decodeSuccess(t, body, &data)
	if data.OTPID == 0 {
		t.Fatal("send response missing otp id")
	}

	return data
}

func getOTP(t *testing.T, id int64) otpData {
	t.Helper()

	status, body := doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/otp/%d", id), nil)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("get otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data otpData
	decodeSuccess(t, body, &data)

	return data
}
