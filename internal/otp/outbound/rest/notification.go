package rest

import (
	"context"

	"github.com/sendpin/sendpin/internal/otp/entity"
)

type notificationRequest struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type notificationResponse struct {
	DeliveryStatus string `json:"delivery_status"`
}

func (c *Client) SendNotification(ctx context.Context, in entity.NotificationRequest) (_ *entity.NotificationResult, err error) {
	ctx, span := c.startSpan(ctx, "SendNotification")
	defer func() { c.endSpan(span, err) }()

	var body notificationResponse
	err = c.postJSON(ctx, c.cfg.NotificationURL, notificationRequest{
		Channel:   in.Channel.String(),
		Recipient: in.Recipient,
		Message:   in.Message,
	}, &body)
	if err != nil {
		return nil, err
	}

	return &entity.NotificationResult{
		Channel:        in.Channel,
		DeliveryStatus: body.DeliveryStatus,
	}, nil
}
