package inbound

import (
	"context"

	"github.com/sendpin/sendpin/internal/otp/usecase"
	"github.com/sendpin/sendpin/internal/pkg/router"
)

type uc interface {
	Send(ctx context.Context, in usecase.SendInput) (*usecase.SendOutput, error)
	Resend(ctx context.Context, in usecase.ResendInput) (*usecase.ResendOutput, error)
	Validate(ctx context.Context, in usecase.ValidateInput) (*usecase.ValidateOutput, error)

	Get(ctx context.Context, in usecase.GetInput) (*usecase.GetOutput, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Export(ctx context.Context, in usecase.ExportInput) (*usecase.ExportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP Lifecycle
	r.POST("/api/v1/otp", end.Send)
	r.POST("/api/v1/otp/:id/resend", end.Resend)
	r.POST("/api/v1/otp/:id/validate", end.Validate)

	// OTP Directory
	r.GET("/api/v1/otp", end.List)
	r.GET("/api/v1/otp/:id", end.Get)
	r.GET("/api/v1/otp-export", end.Export)
}
