package rest

import (
	"context"
	"net/url"

	"github.com/sendpin/sendpin/internal/otp/entity"
)

type customerResponse struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

func (c *Client) LookupCustomer(ctx context.Context, number string) (_ *entity.Customer, err error) {
	ctx, span := c.startSpan(ctx, "LookupCustomer")
	defer func() { c.endSpan(span, err) }()

	var body customerResponse
	query := url.Values{"number": []string{number}}
	if err = c.getJSON(ctx, c.cfg.CustomerURL, query, &body); err != nil {
		return nil, err
	}

	return &entity.Customer{ID: body.ID, Number: body.Number}, nil
}
