package otp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sendpin/sendpin/internal/otp/inbound"
	"github.com/sendpin/sendpin/internal/otp/outbound/cache"
	"github.com/sendpin/sendpin/internal/otp/outbound/db"
	"github.com/sendpin/sendpin/internal/otp/outbound/mq"
	"github.com/sendpin/sendpin/internal/otp/outbound/rest"
	"github.com/sendpin/sendpin/internal/otp/usecase"
	"github.com/sendpin/sendpin/internal/pkg/clock"
	"github.com/sendpin/sendpin/internal/pkg/config"
	"github.com/sendpin/sendpin/internal/pkg/goroutine"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/sendpin/sendpin/internal/pkg/messaging"
	"github.com/sendpin/sendpin/internal/pkg/pin"
	"github.com/sendpin/sendpin/internal/pkg/router"
	"github.com/sendpin/sendpin/internal/pkg/storage"
	"github.com/sendpin/sendpin/internal/pkg/uid"
	"github.com/sendpin/sendpin/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Pin        pin.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbOTP := db.NewDB(dep.DBConn, dep.UID, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	customerCache := cache.NewCache(dep.CacheConn, dep.Config.GetMinute("modules.otp.cache_ttl_minutes"), dep.Instrument)
	restClient := rest.NewClient(rest.Config{
		CustomerURL:         dep.Config.GetString("modules.otp.customer_url"),
		NumberValidationURL: dep.Config.GetString("modules.otp.number_validation_url"),
		NotificationURL:     dep.Config.GetString("modules.otp.notification_url"),
		Timeout:             dep.Config.GetSecond("modules.otp.rest_timeout_seconds"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbOTP,
		RepoMessaging: repoMsg,
		Customers:     restClient,
		Numbers:       restClient,
		Notifier:      restClient,
		Cache:         customerCache,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Storage:       dep.Storage,
		Pin:           dep.Pin,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
