// SPDX-License-Identifier: EPL-2.0

// Package config provides environment overrides for the govbap commands.
package config

import "os"

// Defaults used when neither a flag nor the environment set a value.
const (
	DefaultLogLevel    = "info"
	DefaultLayout      = "stereo"
	DefaultBufferSize  = 4096
	DefaultControlAddr = ""
)

// LogLevel returns VBAP_LOG_LEVEL, or def if unset.
func LogLevel(def string) string {
	return getenv("VBAP_LOG_LEVEL", def)
}

// ControlAddr returns VBAP_CONTROL_ADDR, or def if unset. An empty address
// disables the control server.
func ControlAddr(def string) string {
	return getenv("VBAP_CONTROL_ADDR", def)
}

// Layout returns VBAP_LAYOUT, a preset name or layout file, or def if unset.
func Layout(def string) string {
	return getenv("VBAP_LAYOUT", def)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
