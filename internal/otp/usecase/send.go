package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"golang.org/x/sync/errgroup"
)

type (
	SendInput struct {
		Msisdn string `validate:"required,e164"`
	}

	SendOutput struct {
		OTPID          int64
		CustomerID     int64
		Msisdn         string
		DeliveryStatus string
	}
)

func (s *Usecase) Send(ctx context.Context, in SendInput) (*SendOutput, error) {
	ctx, span := s.startSpan(ctx, "Send")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var (
		customer *entity.Customer
		check    *entity.NumberCheck
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cust, err := s.lookupCustomer(gctx, in.Msisdn)
		if err != nil {
			return err
		}
		customer = cust
		return nil
	})
	g.Go(func() error {
		res, err := s.numbers.CheckNumber(gctx, in.Msisdn)
		if err != nil {
			slog.ErrorContext(gctx, "failed to check number", "msisdn", in.Msisdn, "error", err)
			return goerror.NewUpstream(err, "number validation unavailable")
		}
		check = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !check.Valid {
		slog.WarnContext(ctx, "number rejected by validation", "msisdn", in.Msisdn, "reason", check.Reason)
		return nil, goerror.NewBusiness("phone number is not valid", goerror.CodeInvalidInput)
	}

	pinValue, err := s.pin.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate pin", "error", err)
		return nil, goerror.NewServer(err)
	}

	otp, err := s.repoDB.CreateOTP(ctx, entity.NewOTP{
		CustomerID:    customer.ID,
		Msisdn:        in.Msisdn,
		Pin:           pinValue,
		ApplicationID: s.cfg.GetInt32("modules.otp.application_id"),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp", "customer_id", customer.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	deliveryStatus := "SENT"
	notif, err := s.notifier.SendNotification(ctx, entity.NotificationRequest{
		Channel:   entity.ChannelAuto,
		Recipient: otp.Msisdn,
		Message:   pinMessage(otp.Pin),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send otp notification", "otp_id", otp.ID, "error", err)
		deliveryStatus = "FAILED"
	} else {
		deliveryStatus = notif.DeliveryStatus
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
			OTPID:         otp.ID,
			CustomerID:    otp.CustomerID,
			Msisdn:        otp.Msisdn,
			ApplicationID: otp.ApplicationID,
			CreatedOn:     otp.CreatedOn.Format(time.RFC3339),
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish otp issued", "otp_id", otp.ID, "error", err)
		}
		return nil
	})

	return &SendOutput{
		OTPID:          otp.ID,
		CustomerID:     otp.CustomerID,
		Msisdn:         otp.Msisdn,
		DeliveryStatus: deliveryStatus,
	}, nil
}

func (s *Usecase) lookupCustomer(ctx context.Context, msisdn string) (*entity.Customer, error) {
	id, err := s.cache.GetCustomerID(ctx, msisdn)
	if err == nil {
		return &entity.Customer{ID: id, Number: msisdn}, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer cache unavailable", "msisdn", msisdn, "error", err)
	}

	customer, err := s.customers.LookupCustomer(ctx, msisdn)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "customer not found for number", "msisdn", msisdn)
		return nil, goerror.NewBusiness("customer not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to lookup customer", "msisdn", msisdn, "error", err)
		return nil, goerror.NewUpstream(err, "customer directory unavailable")
	}

	if err := s.cache.SetCustomerID(ctx, msisdn, customer.ID); err != nil {
		slog.WarnContext(ctx, "failed to cache customer id", "msisdn", msisdn, "error", err)
	}

	return customer, nil
}

func pinMessage(pin int32) string {
	return fmt.Sprintf("Your one-time pin is %d", pin)
}
