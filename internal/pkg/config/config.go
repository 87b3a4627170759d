// Package config reads service settings from a YAML file overlaid by
// environment variables, and reloads the file when it changes on disk.
package config

import (
	"io"
	"time"
)

// Config is the read side of the service settings.
//
// Getters never fail: missing or malformed keys yield the zero value, so
// callers apply their own defaults.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetUint(key string) uint
	GetFloat64(key string) float64

	// GetSecond, GetMinute and GetHour read an integer and scale it.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte

	// GetArray reads a YAML list or a comma separated string.
	GetArray(key string) []string

	// OnChange registers fn to run after every successful reload.
	OnChange(fn func())
}
