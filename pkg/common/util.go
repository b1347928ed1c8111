package common

import (
	"math"
	"os"
	"strconv"
	"strings"
)

func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

// GetEnvOrDefault returns the trimmed value of key, or fallback when it is unset or blank.
func GetEnvOrDefault(key string, fallback string) string {
	if v, found := os.LookupEnv(key); found && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	v, found := os.LookupEnv(key)
	if !found {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

// Round2 rounds to two fraction digits, the precision of every decimal column.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Mapper[T any, R any](items []T, mapFn func(T) R) []R {
	mapped := make([]R, len(items))
	for i := range len(items) {
		mapped[i] = mapFn(items[i])
	}
	return mapped
}

func Reducer[T any, R any](items []T, reduceFn func(R, T) R, initAcc R) R {
	finalAcc := initAcc
	for i := range len(items) {
		finalAcc = reduceFn(finalAcc, items[i])
	}
	return finalAcc
}
