package event

const OTPValidatedDestination string = "otp_validated"
const OTPValidatedConsumerAudit string = "otp_validated_audit"

type OTPValidatedMessage struct {
	OTPID        int64  `json:"otp_id"`
	CustomerID   int64  `json:"customer_id"`
	Msisdn       string `json:"msisdn"`
	Status       string `json:"status"`
	AttemptCount int32  `json:"attempt_count"`
}
