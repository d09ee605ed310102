package event

const OTPIssuedDestination string = "otp_issued"
const OTPIssuedConsumerAudit string = "otp_issued_audit"

type OTPIssuedMessage struct {
	OTPID         int64  `json:"otp_id"`
	CustomerID    int64  `json:"customer_id"`
	Msisdn        string `json:"msisdn"`
	ApplicationID int32  `json:"application_id"`
	CreatedOn     string `json:"created_on"`
}
