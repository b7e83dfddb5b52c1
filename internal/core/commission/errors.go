package commission

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks unusable commission configuration: no active rule,
	// several active rules, or a rate table with a missing level.
	ErrConfiguration = errors.New("commission configuration error")

	// ErrInvalidLevel means level arithmetic escaped 1..5. It indicates a bug.
	ErrInvalidLevel = errors.New("invalid referral level")
)

// ConfigurationError describes why a commission configuration was rejected.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "commission configuration: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
