// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package config

import "fmt"

// ConfigError marks an unreadable or malformed pairs file. Fatal: nothing is
// processed when the configuration cannot be trusted.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// CredentialError marks a missing or empty provider credential. Fatal at
// startup.
type CredentialError struct {
	Var string
}

func (e *CredentialError) Error() string {
	return e.Var + " is not set"
}
