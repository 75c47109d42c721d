// Package config centralizes env-derived settings. godotenv is loaded by
// main before anything reads from here.
package config

import (
	"os"
	"strconv"
	"strings"
)

// MissingItemMode controls what checkout does when a cart line's catalog
// master has been deleted since the line was added.
type MissingItemMode string

const (
	// MissingItemFail aborts the whole checkout.
	MissingItemFail MissingItemMode = "fail"
	// MissingItemSkip drops the line with a warning, as the original
	// system silently did.
	MissingItemSkip MissingItemMode = "skip"
)

func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Port() string          { return String("PORT", "8080") }
func DatabaseURL() string   { return String("DATABASE_URL", "") }
func RedisAddr() string     { return String("REDIS_ADDR", "") }
func JWTSecret() []byte     { return []byte(String("JWT_SECRET", "")) }
func EmailSecret() []byte   { return []byte(String("EMAIL_SECRET", "")) }
func AppMode() string       { return String("APP_MODE", "dev") }
func PublicBaseURL() string { return String("PUBLIC_BASE_URL", "http://localhost:8080") }

// CheckoutMissingItem defaults to failing loudly; set
// CHECKOUT_MISSING_ITEM=skip to keep the legacy skip behavior.
func CheckoutMissingItem() MissingItemMode {
	if strings.EqualFold(String("CHECKOUT_MISSING_ITEM", string(MissingItemFail)), string(MissingItemSkip)) {
		return MissingItemSkip
	}
	return MissingItemFail
}
