package inbound

import (
	"github.com/sendpin/sendpin/internal/otp/usecase"
	"github.com/sendpin/sendpin/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the one-time pin lifecycle.
type HTTPEndpoint struct {
	uc uc
}

// Send issues a fresh pin for the given phone number and delivers it.
func (h *HTTPEndpoint) Send(r *router.Request) (any, error) {
	var req SendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Send(r.Context(), usecase.SendInput{
		Msisdn: req.Msisdn,
	})
	if err != nil {
		return nil, err
	}

	return SendResponse{
		OTPID:          resp.OTPID,
		CustomerID:     resp.CustomerID,
		Msisdn:         resp.Msisdn,
		DeliveryStatus: resp.DeliveryStatus,
	}, nil
}

// Resend redelivers the active pin, optionally over a specific channel.
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Resend(r.Context(), usecase.ResendInput{
		OTPID:   id,
		Channel: r.GetQuery("channel"),
	})
	if err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryResponse, 0, len(resp.Deliveries))
	for _, d := range resp.Deliveries {
		deliveries = append(deliveries, DeliveryResponse{
			Channel:        d.Channel.String(),
			DeliveryStatus: d.DeliveryStatus,
		})
	}

	return ResendResponse{OTPID: resp.OTPID, Deliveries: deliveries}, nil
}

// Validate checks a submitted pin and closes the one-time pin either way.
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Validate(r.Context(), usecase.ValidateInput{
		OTPID: id,
		Pin:   req.Pin,
	})
	if err != nil {
		return nil, err
	}

	return ValidateResponse{
		OTPID:        resp.OTPID,
		Status:       resp.Status.String(),
		AttemptCount: resp.AttemptCount,
	}, nil
}

// Get returns a single one-time pin by id.
func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Get(r.Context(), usecase.GetInput{OTPID: id})
	if err != nil {
		return nil, err
	}

	return newOTPResponse(resp.OTP), nil
}

// List returns one-time pins, optionally filtered by customer id.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	customerID, err := r.GetQueryInt64("customer_id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.List(r.Context(), usecase.ListInput{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	otps := make([]OTPResponse, 0, len(resp.OTPs))
	for _, otp := range resp.OTPs {
		otps = append(otps, newOTPResponse(otp))
	}

	return ListResponse{OTPs: otps}, nil
}

// Export writes all one-time pins to object storage and returns a download link.
func (h *HTTPEndpoint) Export(r *router.Request) (any, error) {
	customerID, err := r.GetQueryInt64("customer_id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Export(r.Context(), usecase.ExportInput{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	return ExportResponse{
		URL:       resp.URL,
		ObjectKey: resp.ObjectKey,
		Count:     resp.Count,
	}, nil
}
