package mq

import (
	"context"
	"encoding/json"

	"github.com/sendpin/sendpin/internal/otp/usecase"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/sendpin/sendpin/internal/pkg/messaging"
	"github.com/sendpin/sendpin/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOTPIssued(ctx context.Context, msg usecase.OTPIssuedEvent) error {
	ctx, span := m.ins.Tracer("otp.outbound.mq").Start(ctx, "PublishOTPIssued")
	defer span.End()

	body, err := json.Marshal(event.OTPIssuedMessage{
		OTPID:         msg.OTPID,
		CustomerID:    msg.CustomerID,
		Msisdn:        msg.Msisdn,
		ApplicationID: msg.ApplicationID,
		CreatedOn:     msg.CreatedOn,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OTPIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishOTPValidated(ctx context.Context, msg usecase.OTPValidatedEvent) error {
	ctx, span := m.ins.Tracer("otp.outbound.mq").Start(ctx, "PublishOTPValidated")
	defer span.End()

	body, err := json.Marshal(event.OTPValidatedMessage{
		OTPID:        msg.OTPID,
		CustomerID:   msg.CustomerID,
		Msisdn:       msg.Msisdn,
		Status:       msg.Status,
		AttemptCount: msg.AttemptCount,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OTPValidatedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
