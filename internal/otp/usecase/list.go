package usecase

import (
	"context"
	"log/slog"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

type (
	ListInput struct {
		CustomerID *int64
	}

	ListOutput struct {
		OTPs []entity.OTP
	}
)

func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	otps, err := s.repoDB.GetOTPList(ctx, in.CustomerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list otps", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{OTPs: otps}, nil
}
