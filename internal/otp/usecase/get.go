package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

type (
	GetInput struct {
		OTPID int64 `validate:"required,gt=0"`
	}

	GetOutput struct {
		OTP entity.OTP
	}
)

func (s *Usecase) Get(ctx context.Context, in GetInput) (*GetOutput, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTPByID(ctx, in.OTPID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("otp not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "otp_id", in.OTPID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GetOutput{OTP: *otp}, nil
}
