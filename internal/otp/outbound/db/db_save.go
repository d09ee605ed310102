package db

import (
	"context"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
)

func (s *DB) CreateOTP(ctx context.Context, in entity.NewOTP) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO otps (id, customer_id, msisdn, pin, created_on, status, attempt_count, application_id)
		VALUES ($1, $2, $3, $4, now(), $5, 0, $6)
		RETURNING created_on`

	otp := entity.OTP{
		ID:            s.uid.Generate(),
		CustomerID:    in.CustomerID,
		Msisdn:        in.Msisdn,
		Pin:           in.Pin,
		Status:        entity.StatusActive,
		AttemptCount:  0,
		ApplicationID: in.ApplicationID,
	}

	row := s.conn.QueryRow(ctx, query,
		otp.ID, otp.CustomerID, otp.Msisdn, otp.Pin, otp.Status.String(), otp.ApplicationID)
	if err = row.Scan(&otp.CreatedOn); err != nil {
		return nil, s.mapError(err)
	}

	return &otp, nil
}

// CloseOTP moves an active row to its terminal status. A row that is no
// longer active is not matched and reports goerror.ErrNotFound.
func (s *DB) CloseOTP(ctx context.Context, in entity.CloseOTP) (err error) {
	ctx, span := s.startSpan(ctx, "CloseOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE otps
		SET status = $2, attempt_count = $3
		WHERE id = $1 AND status = $4`

	tag, err := s.conn.Exec(ctx, query,
		in.ID, in.NewStatus.String(), in.AttemptCount, entity.StatusActive.String())
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
