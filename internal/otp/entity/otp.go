package entity

import "time"

type OTP struct {
	ID            int64
	CustomerID    int64
	Msisdn        string
	Pin           int32
	CreatedOn     time.Time
	Status        Status
	AttemptCount  int32
	ApplicationID int32
}

// Expired reports whether the pin validity window closed before now.
func (o OTP) Expired(now time.Time, window time.Duration) bool {
	return !o.CreatedOn.After(now.Add(-window))
}

type Customer struct {
	ID     int64
	Number string
}

type NumberCheck struct {
	Msisdn string
	Valid  bool
	Reason string
}

type NotificationRequest struct {
	Channel   Channel
	Recipient string
	Message   string
}

type NotificationResult struct {
	Channel        Channel
	DeliveryStatus string
}

// ---- //

type NewOTP struct {
	ID            int64
	CustomerID    int64
	Msisdn        string
	Pin           int32
	ApplicationID int32
}

type CloseOTP struct {
	ID           int64
	NewStatus    Status
	AttemptCount int32
}
