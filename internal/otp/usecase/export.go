package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"github.com/sendpin/sendpin/internal/pkg/storage"
)

type (
	ExportInput struct {
		CustomerID *int64
	}

	ExportOutput struct {
		URL       string
		ObjectKey string
		Count     int
	}
)

func (s *Usecase) Export(ctx context.Context, in ExportInput) (*ExportOutput, error) {
	ctx, span := s.startSpan(ctx, "Export")
	defer span.End()

	otps, err := s.repoDB.GetOTPList(ctx, in.CustomerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list otps for export", "error", err)
		return nil, goerror.NewServer(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "customer_id", "msisdn", "pin", "created_on", "status", "attempt_count", "application_id"}
	if err := w.Write(header); err != nil {
		return nil, goerror.NewServer(err)
	}

	for _, otp := range otps {
		record := []string{
			strconv.FormatInt(otp.ID, 10),
			strconv.FormatInt(otp.CustomerID, 10),
			otp.Msisdn,
			maskPin(otp.Pin),
			otp.CreatedOn.Format(time.RFC3339),
			otp.Status.String(),
			strconv.FormatInt(int64(otp.AttemptCount), 10),
			strconv.FormatInt(int64(otp.ApplicationID), 10),
		}
		if err := w.Write(record); err != nil {
			return nil, goerror.NewServer(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("modules.otp.export_bucket")
	key := "exports/otp-" + s.uuid.Generate() + ".csv"

	_, err = s.storage.PutObject(ctx, bucket, key, &buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to put export object", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	url, err := s.storage.PresignGet(ctx, bucket, key, s.cfg.GetMinute("modules.otp.export_url_ttl_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign export object", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ExportOutput{URL: url, ObjectKey: key, Count: len(otps)}, nil
}

// maskPin keeps only the last two digits so exports cannot leak usable pins.
func maskPin(pin int32) string {
	return fmt.Sprintf("****%02d", pin%100)
}
