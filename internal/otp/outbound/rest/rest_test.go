package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
)

func newTestClient(cfg Config) *Client {
	cfg.Timeout = 2 * time.Second
	return NewClient(cfg, instrument.NewNoop())
}

func TestLookupCustomer(t *testing.T) {

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("number"); got != "+628123456789" {
			t.Errorf("number query = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "number": "+628123456789"})
	}))
	defer srv.Close()

	client := newTestClient(Config{CustomerURL: srv.URL})

	// Act
	customer, err := client.LookupCustomer(context.Background(), "+628123456789")

	// Assert
	if err != nil {
		t.Fatalf("LookupCustomer() error = %v", err)
	}
	if customer.ID != 42 || customer.Number != "+628123456789" {
		t.Fatalf("LookupCustomer() = %+v", customer)
	}
}

func TestLookupCustomerNotFound(t *testing.T) {

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestClient(Config{CustomerURL: srv.URL})

	// Act
	_, err := client.LookupCustomer(context.Background(), "+628123456789")

	// Assert
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("LookupCustomer() error = %v, want ErrNotFound", err)
	}
}

func TestCheckNumber(t *testing.T) {

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"msisdn": r.URL.Query().Get("msisdn"),
			"valid":  false,
			"reason": "unreachable",
		})
	}))
	defer srv.Close()

	client := newTestClient(Config{NumberValidationURL: srv.URL})

	// Act
	check, err := client.CheckNumber(context.Background(), "+628123456789")

	// Assert
	if err != nil {
		t.Fatalf("CheckNumber() error = %v", err)
	}
	if check.Valid || check.Reason != "unreachable" {
		t.Fatalf("CheckNumber() = %+v", check)
	}
}

func TestSendNotification(t *testing.T) {

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["channel"] != "SMS" || req["recipient"] != "+628123456789" {
			t.Errorf("request = %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"delivery_status": "SENT"})
	}))
	defer srv.Close()

	client := newTestClient(Config{NotificationURL: srv.URL})

	// Act
	result, err := client.SendNotification(context.Background(), entity.NotificationRequest{
		Channel:   entity.ChannelSMS,
		Recipient: "+628123456789",
		Message:   "Your one-time pin is 345678",
	})

	// Assert
	if err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}
	if result.DeliveryStatus != "SENT" || result.Channel != entity.ChannelSMS {
		t.Fatalf("SendNotification() = %+v", result)
	}
}

func TestSendNotificationServerError(t *testing.T) {

	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(Config{NotificationURL: srv.URL})

	// Act
	_, err := client.SendNotification(context.Background(), entity.NotificationRequest{
		Channel:   entity.ChannelSMS,
		Recipient: "+628123456789",
	})

	// Assert
	if err == nil {
		t.Fatal("SendNotification() error = nil, want failure")
	}
}
