package usecase

import (
	"context"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/clock"
	"github.com/sendpin/sendpin/internal/pkg/config"
	"github.com/sendpin/sendpin/internal/pkg/goroutine"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/sendpin/sendpin/internal/pkg/pin"
	"github.com/sendpin/sendpin/internal/pkg/storage"
	"github.com/sendpin/sendpin/internal/pkg/uid"
	"github.com/sendpin/sendpin/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPIssuedEvent struct {
	OTPID         int64
	CustomerID    int64
	Msisdn        string
	ApplicationID int32
	CreatedOn     string
}

type OTPValidatedEvent struct {
	OTPID        int64
	CustomerID   int64
	Msisdn       string
	Status       string
	AttemptCount int32
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
	PublishOTPValidated(ctx context.Context, msg OTPValidatedEvent) error
}

type repoDB interface {
	GetOTPList(ctx context.Context, customerID *int64) ([]entity.OTP, error)
	GetOTPByID(ctx context.Context, id int64) (*entity.OTP, error)
	GetOTPByIDAndStatus(ctx context.Context, id int64, status entity.Status) (*entity.OTP, error)
	GetOTPByIDAndPinAndStatus(ctx context.Context, id int64, pin int32, status entity.Status) (*entity.OTP, error)

	CreateOTP(ctx context.Context, in entity.NewOTP) (*entity.OTP, error)
	CloseOTP(ctx context.Context, in entity.CloseOTP) error
}

type customerDirectory interface {
	LookupCustomer(ctx context.Context, number string) (*entity.Customer, error)
}

type numberValidator interface {
	CheckNumber(ctx context.Context, msisdn string) (*entity.NumberCheck, error)
}

type notifier interface {
	SendNotification(ctx context.Context, in entity.NotificationRequest) (*entity.NotificationResult, error)
}

type customerCache interface {
	GetCustomerID(ctx context.Context, msisdn string) (int64, error)
	SetCustomerID(ctx context.Context, msisdn string, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	customers     customerDirectory
	numbers       numberValidator
	notifier      notifier
	cache         customerCache
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	pin           pin.Generator
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Customers     customerDirectory
	Numbers       numberValidator
	Notifier      notifier
	Cache         customerCache
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	Pin           pin.Generator
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		customers:     dep.Customers,
		numbers:       dep.Numbers,
		notifier:      dep.Notifier,
		cache:         dep.Cache,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		pin:           dep.Pin,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}
