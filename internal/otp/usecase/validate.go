package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

type (
	ValidateInput struct {
		OTPID int64 `validate:"required,gt=0"`
		Pin   int32 `validate:"required,min=100000,max=999999"`
	}

	ValidateOutput struct {
		OTPID        int64
		Status       entity.Status
		AttemptCount int32
	}
)

func (s *Usecase) Validate(ctx context.Context, in ValidateInput) (*ValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTPByIDAndPinAndStatus(ctx, in.OTPID, in.Pin, entity.StatusActive)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no active otp matches pin", "otp_id", in.OTPID)
		return nil, goerror.NewBusiness("otp not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp for validation", "otp_id", in.OTPID, "error", err)
		return nil, goerror.NewServer(err)
	}

	window := s.cfg.GetSecond("modules.otp.validity_window_seconds")
	newStatus := entity.StatusVerified
	if otp.Expired(s.clock.Now(), window) {
		newStatus = entity.StatusExpired
	}

	closed := entity.CloseOTP{
		ID:           otp.ID,
		NewStatus:    newStatus,
		AttemptCount: otp.AttemptCount + 1,
	}

	err = s.repoDB.CloseOTP(ctx, closed)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp already closed by another attempt", "otp_id", otp.ID)
		return nil, goerror.NewBusiness("otp not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo close otp", "otp_id", otp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		err := s.repoMessaging.PublishOTPValidated(ctx, OTPValidatedEvent{
			OTPID:        otp.ID,
			CustomerID:   otp.CustomerID,
			Msisdn:       otp.Msisdn,
			Status:       newStatus.String(),
			AttemptCount: closed.AttemptCount,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish otp validated", "otp_id", otp.ID, "error", err)
		}
		return nil
	})

	if newStatus == entity.StatusExpired {
		return nil, goerror.NewBusiness("otp has expired", goerror.CodeExpired)
	}

	return &ValidateOutput{
		OTPID:        otp.ID,
		Status:       newStatus,
		AttemptCount: closed.AttemptCount,
	}, nil
}
