package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

func TestValidateFreshPin(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	otp := activeOTPFixture()
	otp.CreatedOn = deps.clock.now.Add(-30 * time.Second)
	otp.AttemptCount = 1

	deps.db.getOTPByIDAndPinAndStatus = func(_ context.Context, id int64, pin int32, status entity.Status) (*entity.OTP, error) {
		if pin != 345678 || status != entity.StatusActive {
			t.Errorf("lookup pin=%d status=%q, want 345678 ACTIVE", pin, status)
		}
		return otp, nil
	}
	deps.db.closeOTP = func(_ context.Context, in entity.CloseOTP) error {
		if in.NewStatus != entity.StatusVerified {
			t.Errorf("new status = %q, want VERIFIED", in.NewStatus)
		}
		if in.AttemptCount != 2 {
			t.Errorf("attempt count = %d, want 2", in.AttemptCount)
		}
		return nil
	}

	var published atomic.Int32
	deps.mq.publishValidated = func(_ context.Context, msg OTPValidatedEvent) error {
		if msg.Status != entity.StatusVerified.String() {
			t.Errorf("event status = %q, want VERIFIED", msg.Status)
		}
		published.Add(1)
		return nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.Validate(context.Background(), ValidateInput{OTPID: 99, Pin: 345678})
	deps.goroutine.Wait()

	// Assert
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if out.Status != entity.StatusVerified || out.AttemptCount != 2 {
		t.Fatalf("Validate() = %+v, want VERIFIED with attempt count 2", out)
	}
	if published.Load() != 1 {
		t.Fatalf("validated event published %d times, want 1", published.Load())
	}
}

func TestValidateStalePinExpires(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	otp := activeOTPFixture()
	otp.CreatedOn = deps.clock.now.Add(-3 * time.Minute)

	deps.db.getOTPByIDAndPinAndStatus = func(context.Context, int64, int32, entity.Status) (*entity.OTP, error) {
		return otp, nil
	}

	var closed entity.CloseOTP
	deps.db.closeOTP = func(_ context.Context, in entity.CloseOTP) error {
		closed = in
		return nil
	}

	var published atomic.Int32
	deps.mq.publishValidated = func(_ context.Context, msg OTPValidatedEvent) error {
		if msg.Status != entity.StatusExpired.String() {
			t.Errorf("event status = %q, want EXPIRED", msg.Status)
		}
		published.Add(1)
		return nil
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Validate(context.Background(), ValidateInput{OTPID: 99, Pin: 345678})
	deps.goroutine.Wait()

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeExpired {
		t.Fatalf("Validate() error = %v, want expired code", err)
	}
	if closed.NewStatus != entity.StatusExpired || closed.AttemptCount != 1 {
		t.Fatalf("closed = %+v, want EXPIRED with attempt count 1", closed)
	}
	if published.Load() != 1 {
		t.Fatalf("validated event published %d times, want 1", published.Load())
	}
}

func TestValidateWrongPin(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	deps.db.getOTPByIDAndPinAndStatus = func(context.Context, int64, int32, entity.Status) (*entity.OTP, error) {
		return nil, goerror.ErrNotFound
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Validate(context.Background(), ValidateInput{OTPID: 99, Pin: 111111})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("Validate() error = %v, want not found code", err)
	}
}

func TestValidateLosesCloseRace(t *testing.T) {

	// Arrange
	deps := defaultTestDeps()
	otp := activeOTPFixture()
	otp.CreatedOn = deps.clock.now.Add(-30 * time.Second)

	deps.db.getOTPByIDAndPinAndStatus = func(context.Context, int64, int32, entity.Status) (*entity.OTP, error) {
		return otp, nil
	}
	deps.db.closeOTP = func(context.Context, entity.CloseOTP) error {
		return goerror.ErrNotFound
	}
	uc := newTestUsecase(t, deps)

	// Act
	_, err := uc.Validate(context.Background(), ValidateInput{OTPID: 99, Pin: 345678})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("Validate() error = %v, want not found code", err)
	}
}

func TestValidateRejectsPinOutOfRange(t *testing.T) {

	// Arrange
	uc := newTestUsecase(t, defaultTestDeps())

	// Act
	_, err := uc.Validate(context.Background(), ValidateInput{OTPID: 99, Pin: 42})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
		t.Fatalf("Validate() error = %v, want validation type", err)
	}
}
