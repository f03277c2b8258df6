// Package env reads raw environment variables for the few settings that are
// consulted before the envconfig-backed config is loaded, like LOG_FORMAT.
package env

import "os"

// Get returns the variable's value, or the fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
