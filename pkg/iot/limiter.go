package iot

import (
	"strconv"
	"sync"

	"golang.org/x/time/rate"
	"liyu1981.xyz/iot-dashboard/pkg/common"
)

const (
	DefaultRate  rate.Limit = 10
	DefaultBurst int        = 20
)

// RateLimiterStore manages per-device rate limiters: device token -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

// NewRateLimiterStoreFromEnv reads IOT_DEFAULT_RATE and IOT_DEFAULT_BURST, falling back to
// DefaultRate and DefaultBurst when unset or malformed.
func NewRateLimiterStoreFromEnv() *RateLimiterStore {
	defaultRate := DefaultRate
	if v, err := strconv.ParseFloat(common.GetEnvOrDefault(common.EnvKeyIOTDefaultRate, ""), 64); err == nil && v > 0 {
		defaultRate = rate.Limit(v)
	}

	defaultBurst := DefaultBurst
	if v, err := strconv.Atoi(common.GetEnvOrDefault(common.EnvKeyIOTDefaultBurst, "")); err == nil && v > 0 {
		defaultBurst = v
	}

	return NewRateLimiterStore(defaultRate, defaultBurst)
}

func (s *RateLimiterStore) GetLimiter(token string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[token]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[token] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(token string, deviceRate rate.Limit, deviceBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[token] = rate.NewLimiter(deviceRate, deviceBurst)
}

// Allow consumes one event for token. A nil store never limits.
func (s *RateLimiterStore) Allow(token string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(token).Allow()
}

// Len is the number of tokens holding a limiter.
func (s *RateLimiterStore) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func (s *RateLimiterStore) Defaults() (rate.Limit, int) {
	return s.defaultRate, s.defaultBurst
}
