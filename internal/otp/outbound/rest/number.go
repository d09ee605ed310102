package rest

import (
	"context"
	"net/url"

	"github.com/sendpin/sendpin/internal/otp/entity"
)

type numberCheckResponse struct {
	Msisdn string `json:"msisdn"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

func (c *Client) CheckNumber(ctx context.Context, msisdn string) (_ *entity.NumberCheck, err error) {
	ctx, span := c.startSpan(ctx, "CheckNumber")
	defer func() { c.endSpan(span, err) }()

	var body numberCheckResponse
	query := url.Values{"msisdn": []string{msisdn}}
	if err = c.getJSON(ctx, c.cfg.NumberValidationURL, query, &body); err != nil {
		return nil, err
	}

	return &entity.NumberCheck{
		Msisdn: body.Msisdn,
		Valid:  body.Valid,
		Reason: body.Reason,
	}, nil
}
