package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/samber/lo"
	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

type (
	ResendInput struct {
		OTPID   int64  `validate:"required,gt=0"`
		Channel string `validate:"omitempty,channel"`
	}

	ResendOutput struct {
		OTPID      int64
		Deliveries []entity.NotificationResult
	}
)

func (s *Usecase) Resend(ctx context.Context, in ResendInput) (*ResendOutput, error) {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTPByIDAndStatus(ctx, in.OTPID, entity.StatusActive)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no active otp to resend", "otp_id", in.OTPID)
		return nil, goerror.NewBusiness("otp not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp for resend", "otp_id", in.OTPID, "error", err)
		return nil, goerror.NewServer(err)
	}

	channels := s.resolveChannels(entity.ParseChannel(in.Channel))
	if len(channels) == 0 {
		slog.ErrorContext(ctx, "no resend channels configured", "otp_id", in.OTPID)
		return nil, goerror.NewServer(errors.New("no resend channels configured"))
	}

	results := make([]entity.NotificationResult, len(channels))
	failures := make([]error, len(channels))

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch entity.Channel) {
			defer wg.Done()

			res, err := s.notifier.SendNotification(ctx, entity.NotificationRequest{
				Channel:   ch,
				Recipient: otp.Msisdn,
				Message:   pinMessage(otp.Pin),
			})
			if err != nil {
				slog.ErrorContext(ctx, "failed to resend otp notification",
					"otp_id", otp.ID, "channel", ch.String(), "error", err)
				failures[i] = err
				results[i] = entity.NotificationResult{Channel: ch, DeliveryStatus: "FAILED"}
				return
			}

			results[i] = *res
			results[i].Channel = ch
		}(i, ch)
	}
	wg.Wait()

	delivered := lo.CountBy(failures, func(err error) bool { return err == nil })
	if delivered == 0 {
		return nil, goerror.NewUpstream(errors.Join(failures...), "all delivery channels failed")
	}

	return &ResendOutput{OTPID: otp.ID, Deliveries: results}, nil
}

func (s *Usecase) resolveChannels(requested entity.Channel) []entity.Channel {
	if requested != entity.ChannelUnknown && requested != entity.ChannelAuto {
		return []entity.Channel{requested}
	}

	configured := s.cfg.GetArray("modules.otp.resend_channels")
	channels := lo.FilterMap(configured, func(raw string, _ int) (entity.Channel, bool) {
		ch := entity.ParseChannel(raw)
		return ch, ch != entity.ChannelUnknown && ch != entity.ChannelAuto
	})

	if len(channels) == 0 {
		channels = []entity.Channel{entity.ChannelSMS}
	}

	return lo.Uniq(channels)
}
