package services

import (
	"fmt"
	"math/rand"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// OTPStore issues and verifies one-time codes. Two backends exist: a
// durable ledger used during signup and an expiring cache used for
// password resets.
type OTPStore interface {
	Issue(phone string) (string, error)
	Verify(phone, code string) error
}

// GenerateCode returns a uniform 6-digit decimal code.
func GenerateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// LedgerOTPStore persists codes in the otp_codes table. A code is valid
// until used or until models.OTPTTL after creation, whichever comes first.
type LedgerOTPStore struct {
	DB *gorm.DB
}

func NewLedgerOTPStore(db *gorm.DB) *LedgerOTPStore {
	return &LedgerOTPStore{DB: db}
}

func (s *LedgerOTPStore) Issue(phone string) (string, error) {
	otp := models.OTPCode{
		PhoneNumber: phone,
		Code:        GenerateCode(),
	}
	if err := s.DB.Create(&otp).Error; err != nil {
		return "", err
	}
	return otp.Code, nil
}

func (s *LedgerOTPStore) Verify(phone, code string) error {
	var otp models.OTPCode
	err := s.DB.
		Where("phone_number = ? AND code = ? AND used = ?", phone, code, false).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		return utils.ErrInvalidOrExpired
	}
	if otp.IsExpired() {
		return utils.ErrInvalidOrExpired
	}

	// Single use: a second verify with the same code must fail.
	otp.Used = true
	if err := s.DB.Save(&otp).Error; err != nil {
		return err
	}
	return nil
}

// KVStore is the slice of a generic expiring key-value store the cache
// backend needs. Tests inject a fake instead of a real cache.
type KVStore interface {
	Get(key string) (string, bool)
	SetWithTTL(key, value string, ttl time.Duration)
}

// CacheOTPStore keeps codes under "otp:<phone>" with a fixed TTL. There is
// no used flag: expiry or a reissue invalidates the old code.
type CacheOTPStore struct {
	KV  KVStore
	TTL time.Duration
}

func NewCacheOTPStore(kv KVStore) *CacheOTPStore {
	return &CacheOTPStore{KV: kv, TTL: 300 * time.Second}
}

func (s *CacheOTPStore) Issue(phone string) (string, error) {
	code := GenerateCode()
	s.KV.SetWithTTL("otp:"+phone, code, s.TTL)
	return code, nil
}

func (s *CacheOTPStore) Verify(phone, code string) error {
	cached, ok := s.KV.Get("otp:" + phone)
	if !ok || cached != code {
		return utils.ErrInvalidOrExpired
	}
	return nil
}

// MemoryKV backs KVStore with an in-process go-cache instance.
type MemoryKV struct {
	cache *gocache.Cache
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *MemoryKV) SetWithTTL(key, value string, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}
