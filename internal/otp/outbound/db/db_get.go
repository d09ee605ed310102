package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sendpin/sendpin/internal/otp/entity"
)

const otpColumns = `id, customer_id, msisdn, pin, created_on, status, attempt_count, application_id`

func scanOTP(row pgx.Row) (*entity.OTP, error) {
	var otp entity.OTP
	var status string

	err := row.Scan(
		&otp.ID,
		&otp.CustomerID,
		&otp.Msisdn,
		&otp.Pin,
		&otp.CreatedOn,
		&status,
		&otp.AttemptCount,
		&otp.ApplicationID,
	)
	if err != nil {
		return nil, err
	}

	otp.Status = entity.ParseStatus(status)
	return &otp, nil
}

func (s *DB) GetOTPByID(ctx context.Context, id int64) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps WHERE id = $1`

	otp, err := scanOTP(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

func (s *DB) GetOTPByIDAndStatus(ctx context.Context, id int64, status entity.Status) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPByIDAndStatus")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps WHERE id = $1 AND status = $2`

	otp, err := scanOTP(s.conn.QueryRow(ctx, query, id, status.String()))
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

func (s *DB) GetOTPByIDAndPinAndStatus(ctx context.Context, id int64, pin int32, status entity.Status) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPByIDAndPinAndStatus")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps WHERE id = $1 AND pin = $2 AND status = $3`

	otp, err := scanOTP(s.conn.QueryRow(ctx, query, id, pin, status.String()))
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

func (s *DB) GetOTPList(ctx context.Context, customerID *int64) (_ []entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPList")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps ORDER BY created_on DESC`
	args := []any{}
	if customerID != nil {
		query = `SELECT ` + otpColumns + ` FROM otps WHERE customer_id = $1 ORDER BY created_on DESC`
		args = append(args, *customerID)
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	otps := make([]entity.OTP, 0)
	for rows.Next() {
		otp, err := scanOTP(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		otps = append(otps, *otp)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return otps, nil
}
