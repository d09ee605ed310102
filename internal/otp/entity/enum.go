package entity

import "strings"

type Status string

const (
	// StatusUnknown is mean status is not known / not set.
	StatusUnknown Status = ""

	// StatusActive mean the pin was issued and can still be validated.
	StatusActive Status = "ACTIVE"

	// StatusVerified mean the pin was matched inside its validity window.
	StatusVerified Status = "VERIFIED"

	// StatusExpired mean the pin was matched after its validity window closed.
	StatusExpired Status = "EXPIRED"
)

func ParseStatus(str string) Status {
	switch strings.ToUpper(str) {
	case "ACTIVE":
		return StatusActive
	case "VERIFIED":
		return StatusVerified
	case "EXPIRED":
		return StatusExpired
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsUnknown() bool {
	switch s {
	case StatusActive, StatusVerified, StatusExpired:
		return false
	default:
		return true
	}
}

type Channel string

const (
	ChannelUnknown Channel = ""

	// ChannelAuto lets the delivery side pick the configured default channels.
	ChannelAuto Channel = "AUTO"

	ChannelSMS   Channel = "SMS"
	ChannelEmail Channel = "EMAIL"
)

func ParseChannel(str string) Channel {
	switch strings.ToUpper(str) {
	case "AUTO":
		return ChannelAuto
	case "SMS":
		return ChannelSMS
	case "EMAIL":
		return ChannelEmail
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	return string(c)
}
