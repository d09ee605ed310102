package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sendpin/sendpin/internal/otp/entity"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"github.com/sendpin/sendpin/internal/pkg/goroutine"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/sendpin/sendpin/internal/pkg/storage"
	"github.com/sendpin/sendpin/internal/pkg/validator"
)

type fakeDB struct {
	getOTPList                func(ctx context.Context, customerID *int64) ([]entity.OTP, error)
	getOTPByID                func(ctx context.Context, id int64) (*entity.OTP, error)
	getOTPByIDAndStatus       func(ctx context.Context, id int64, status entity.Status) (*entity.OTP, error)
	getOTPByIDAndPinAndStatus func(ctx context.Context, id int64, pin int32, status entity.Status) (*entity.OTP, error)
	createOTP                 func(ctx context.Context, in entity.NewOTP) (*entity.OTP, error)
	closeOTP                  func(ctx context.Context, in entity.CloseOTP) error
}

func (f *fakeDB) GetOTPList(ctx context.Context, customerID *int64) ([]entity.OTP, error) {
	return f.getOTPList(ctx, customerID)
}

func (f *fakeDB) GetOTPByID(ctx context.Context, id int64) (*entity.OTP, error) {
	return f.getOTPByID(ctx, id)
}

func (f *fakeDB) GetOTPByIDAndStatus(ctx context.Context, id int64, status entity.Status) (*entity.OTP, error) {
	return f.getOTPByIDAndStatus(ctx, id, status)
}

func (f *fakeDB) GetOTPByIDAndPinAndStatus(ctx context.Context, id int64, pin int32, status entity.Status) (*entity.OTP, error) {
	return f.getOTPByIDAndPinAndStatus(ctx, id, pin, status)
}

func (f *fakeDB) CreateOTP(ctx context.Context, in entity.NewOTP) (*entity.OTP, error) {
	return f.createOTP(ctx, in)
}

func (f *fakeDB) CloseOTP(ctx context.Context, in entity.CloseOTP) error {
	return f.closeOTP(ctx, in)
}

type fakeMQ struct {
	publishIssued    func(ctx context.Context, msg OTPIssuedEvent) error
	publishValidated func(ctx context.Context, msg OTPValidatedEvent) error
}

func (f *fakeMQ) PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error {
	if f.publishIssued == nil {
		return nil
	}
	return f.publishIssued(ctx, msg)
}

func (f *fakeMQ) PublishOTPValidated(ctx context.Context, msg OTPValidatedEvent) error {
	if f.publishValidated == nil {
		return nil
	}
	return f.publishValidated(ctx, msg)
}

type fakeCollaborators struct {
	lookupCustomer   func(ctx context.Context, number string) (*entity.Customer, error)
	checkNumber      func(ctx context.Context, msisdn string) (*entity.NumberCheck, error)
	sendNotification func(ctx context.Context, in entity.NotificationRequest) (*entity.NotificationResult, error)
}

func (f *fakeCollaborators) LookupCustomer(ctx context.Context, number string) (*entity.Customer, error) {
	return f.lookupCustomer(ctx, number)
}

func (f *fakeCollaborators) CheckNumber(ctx context.Context, msisdn string) (*entity.NumberCheck, error) {
	return f.checkNumber(ctx, msisdn)
}

func (f *fakeCollaborators) SendNotification(ctx context.Context, in entity.NotificationRequest) (*entity.NotificationResult, error) {
	return f.sendNotification(ctx, in)
}

type fakeCache struct {
	get func(ctx context.Context, msisdn string) (int64, error)
	set func(ctx context.Context, msisdn string, id int64) error
}

func (f *fakeCache) GetCustomerID(ctx context.Context, msisdn string) (int64, error) {
	return f.get(ctx, msisdn)
}

func (f *fakeCache) SetCustomerID(ctx context.Context, msisdn string, id int64) error {
	if f.set == nil {
		return nil
	}
	return f.set(ctx, msisdn, id)
}

type fakeStorage struct {
	putObject  func(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error)
	presignGet func(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

func (f *fakeStorage) Close() error { return nil }

func (f *fakeStorage) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	return f.putObject(ctx, bucket, key, r, opts)
}

func (f *fakeStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return f.presignGet(ctx, bucket, key, expiry)
}

type fakePin struct {
	value int32
	err   error
}

func (f *fakePin) Generate() (int32, error) {
	return f.value, f.err
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeStringID struct {
	value string
}

func (f *fakeStringID) Generate() string {
	return f.value
}

type mapConfig struct {
	values map[string]string
}

func (c *mapConfig) Close() error { return nil }

func (c *mapConfig) get(key string) string { return c.values[key] }

func (c *mapConfig) GetSecond(key string) time.Duration {
	return time.Duration(c.GetInt64(key)) * time.Second
}

func (c *mapConfig) GetMinute(key string) time.Duration {
	return time.Duration(c.GetInt64(key)) * time.Minute
}

func (c *mapConfig) GetHour(key string) time.Duration {
	return time.Duration(c.GetInt64(key)) * time.Hour
}

func (c *mapConfig) GetDay(key string) time.Duration {
	return time.Duration(c.GetInt64(key)) * 24 * time.Hour
}

func (c *mapConfig) GetInt(key string) int     { return int(c.GetInt64(key)) }
func (c *mapConfig) GetInt32(key string) int32 { return int32(c.GetInt64(key)) }

func (c *mapConfig) GetInt64(key string) int64 {
	var n int64
	for _, r := range c.get(key) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

func (c *mapConfig) GetUint(key string) uint       { return uint(c.GetInt64(key)) }
func (c *mapConfig) GetUint16(key string) uint16   { return uint16(c.GetInt64(key)) }
func (c *mapConfig) GetUint32(key string) uint32   { return uint32(c.GetInt64(key)) }
func (c *mapConfig) GetUint64(key string) uint64   { return uint64(c.GetInt64(key)) }
func (c *mapConfig) GetFloat32(key string) float32 { return float32(c.GetInt64(key)) }
func (c *mapConfig) GetFloat64(key string) float64 { return float64(c.GetInt64(key)) }
func (c *mapConfig) GetBool(key string) bool       { return c.get(key) == "true" }
func (c *mapConfig) GetString(key string) string   { return c.get(key) }
func (c *mapConfig) GetBinary(key string) []byte   { return []byte(c.get(key)) }

func (c *mapConfig) GetArray(key string) []string {
	raw := c.get(key)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func (c *mapConfig) GetMap(key string) map[string]string { return nil }

type testDeps struct {
	db        *fakeDB
	mq        *fakeMQ
	collab    *fakeCollaborators
	cache     *fakeCache
	storage   *fakeStorage
	pin       *fakePin
	clock     *fakeClock
	cfg       *mapConfig
	goroutine *goroutine.Manager
}

func defaultTestDeps() *testDeps {
	return &testDeps{
		db:     &fakeDB{},
		mq:     &fakeMQ{},
		collab: &fakeCollaborators{},
		cache: &fakeCache{
			get: func(context.Context, string) (int64, error) { return 0, goerror.ErrNotFound },
		},
		storage: &fakeStorage{},
		pin:     &fakePin{value: 345678},
		clock:   &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		cfg: &mapConfig{values: map[string]string{
			"modules.otp.application_id":          "7",
			"modules.otp.validity_window_seconds": "120",
			"modules.otp.resend_channels":         "SMS",
			"modules.otp.export_bucket":           "exports",
			"modules.otp.export_url_ttl_minutes":  "15",
		}},
		goroutine: goroutine.NewManager(8),
	}
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("init validator: %v", err)
	}

	return New(Dependency{
		RepoDB:        deps.db,
		RepoMessaging: deps.mq,
		Customers:     deps.collab,
		Numbers:       deps.collab,
		Notifier:      deps.collab,
		Cache:         deps.cache,
		Validator:     v,
		Config:        deps.cfg,
		Storage:       deps.storage,
		Pin:           deps.pin,
		UUID:          &fakeStringID{value: "0123456789abcdef"},
		Clock:         deps.clock,
		Instrument:    instrument.NewNoop(),
		Goroutine:     deps.goroutine,
	})
}
