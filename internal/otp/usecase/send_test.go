package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

func TestSend(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.collab.lookupCustomer = func(_ context.Context, number string) (*entity.Customer, error) {
		return &entity.Customer{ID: 42, Number: number}, nil
	}
	deps.collab.checkNumber = func(_ context.Context, msisdn string) (*entity.NumberCheck, error) {
		return &entity.NumberCheck{Msisdn: msisdn, Valid: true}, nil
	}
	deps.collab.sendNotification = func(_ context.Context, in entity.NotificationRequest) (*entity.NotificationResult, error) {
		if in.Channel != entity.ChannelAuto {
			t.Errorf("notification channel = %q, want AUTO", in.Channel)
		}
		return &entity.NotificationResult{Channel: in.Channel, DeliveryStatus: "SENT"}, nil
	}
	deps.db.createOTP = func(_ context.Context, in entity.NewOTP) (*entity.OTP, error) {
		if in.CustomerID != 42 {
			t.Errorf("customer id = %d, want 42", in.CustomerID)
		}
		if in.Pin != 345678 {
			t.Errorf("pin = %d, want 345678", in.Pin)
		}
		if in.ApplicationID != 7 {
			t.Errorf("application id = %d, want 7", in.ApplicationID)
		}
		return &entity.OTP{
			ID:            99,
			CustomerID:    in.CustomerID,
			Msisdn:        in.Msisdn,
			Pin:           in.Pin,
			CreatedOn:     deps.clock.now,
			Status:        entity.StatusActive,
			ApplicationID: in.ApplicationID,
		}, nil
	}

	var published atomic.Int32
	deps.mq.publishIssued = func(_ context.Context, msg OTPIssuedEvent) error {
		if msg.OTPID != 99 {
			t.Errorf("event otp id = %d, want 99", msg.OTPID)
		}
		published.Add(1)
		return nil
	}

	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})
	waitErr := deps.goroutine.Wait()

	// Assert
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if waitErr != nil {
		t.Fatalf("goroutine wait error = %v", waitErr)
	}
	if out.OTPID != 99 || out.CustomerID != 42 {
		t.Fatalf("Send() = %+v, want otp 99 for customer 42", out)
	}
	if out.DeliveryStatus != "SENT" {
		t.Fatalf("delivery status = %q, want SENT", out.DeliveryStatus)
	}
	if published.Load() != 1 {
		t.Fatalf("issued event published %d times, want 1", published.Load())
	}
}

func TestSendInvalidMsisdn(t *testing.T) {

	// Arrange
	uc := newTestUsecase(t, defaultTestDeps())

	// Act
	_, err := uc.Send(context.Background(), SendInput{Msisdn: "not-a-number"})

	// Assert
	if err == nil {
		t.Fatal("Send() error = nil, want validation error")
	}
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
		t.Fatalf("Send() error = %v, want validation type", err)
	}
}

func TestSendCustomerNotFound(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.collab.lookupCustomer = func(context.Context, string) (*entity.Customer, error) {
		return nil, goerror.ErrNotFound
	}
	deps.collab.checkNumber = func(_ context.Context, msisdn string) (*entity.NumberCheck, error) {
		return &entity.NumberCheck{Msisdn: msisdn, Valid: true}, nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("Send() error = %v, want not found code", err)
	}
}

func TestSendNumberRejected(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.collab.lookupCustomer = func(_ context.Context, number string) (*entity.Customer, error) {
		return &entity.Customer{ID: 42, Number: number}, nil
	}
	deps.collab.checkNumber = func(_ context.Context, msisdn string) (*entity.NumberCheck, error) {
		return &entity.NumberCheck{Msisdn: msisdn, Valid: false, Reason: "unreachable"}, nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("Send() error = %v, want invalid input code", err)
	}
}

func TestSendNumberValidationDown(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.collab.lookupCustomer = func(_ context.Context, number string) (*entity.Customer, error) {
		return &entity.Customer{ID: 42, Number: number}, nil
	}
	deps.collab.checkNumber = func(context.Context, string) (*entity.NumberCheck, error) {
		return nil, errors.New("connection refused")
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeUpstream {
		t.Fatalf("Send() error = %v, want upstream code", err)
	}
}

func TestSendNotificationFailureIsNotFatal(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.collab.lookupCustomer = func(_ context.Context, number string) (*entity.Customer, error) {
		return &entity.Customer{ID: 42, Number: number}, nil
	}
	deps.collab.checkNumber = func(_ context.Context, msisdn string) (*entity.NumberCheck, error) {
		return &entity.NumberCheck{Msisdn: msisdn, Valid: true}, nil
	}
	deps.collab.sendNotification = func(context.Context, entity.NotificationRequest) (*entity.NotificationResult, error) {
		return nil, errors.New("gateway timeout")
	}
	deps.db.createOTP = func(_ context.Context, in entity.NewOTP) (*entity.OTP, error) {
		return &entity.OTP{ID: 99, CustomerID: in.CustomerID, Msisdn: in.Msisdn, Pin: in.Pin}, nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})
	deps.goroutine.Wait()

	// Assert
	if err != nil {
		t.Fatalf("Send() error = %v, want success despite failed delivery", err)
	}
	if out.DeliveryStatus != "FAILED" {
		t.Fatalf("delivery status = %q, want FAILED", out.DeliveryStatus)
	}
}

func TestSendUsesCachedCustomer(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.cache.get = func(context.Context, string) (int64, error) { return 42, nil }
	deps.collab.lookupCustomer = func(context.Context, string) (*entity.Customer, error) {
		return nil, errors.New("directory lookup should be skipped on cache hit")
	}
	deps.collab.checkNumber = func(_ context.Context, msisdn string) (*entity.NumberCheck, error) {
		return &entity.NumberCheck{Msisdn: msisdn, Valid: true}, nil
	}
	deps.collab.sendNotification = func(_ context.Context, in entity.NotificationRequest) (*entity.NotificationResult, error) {
		return &entity.NotificationResult{Channel: in.Channel, DeliveryStatus: "SENT"}, nil
	}
	deps.db.createOTP = func(_ context.Context, in entity.NewOTP) (*entity.OTP, error) {
		return &entity.OTP{ID: 99, CustomerID: in.CustomerID, Msisdn: in.Msisdn, Pin: in.Pin}, nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.Send(context.Background(), SendInput{Msisdn: "+628123456789"})
	deps.goroutine.Wait()

	// Assert
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if out.CustomerID != 42 {
		t.Fatalf("customer id = %d, want cached 42", out.CustomerID)
	}
}
