package config

import (
	"errors"
	"fmt"
	"maps"
)

// ErrInvalidConfiguration is returned when credential input is not key-value structured.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Recognized credential keys.
const (
	KeyUserName = "userName"
	KeyPassword = "password"
)

// Default search filters.
const (
	FilterLanguage = "filter_language"
	FilterType     = "filter_type"
	FilterLimit    = "limit"
)

// Credentials is the basic-auth pair sent with every API request.
type Credentials struct {
	UserName string
	Password string
}

// ParseCredentials reads userName and password from a key-value mapping.
// Missing keys keep their empty default and unknown keys are ignored.
func ParseCredentials(raw any) (Credentials, error) {
	var creds Credentials

	switch m := raw.(type) {
	case map[string]string:
		creds.UserName = m[KeyUserName]
		creds.Password = m[KeyPassword]
	case map[string]any:
		var err error

		if creds.UserName, err = stringValue(m, KeyUserName); err != nil {
			return Credentials{}, err
		}

		if creds.Password, err = stringValue(m, KeyPassword); err != nil {
			return Credentials{}, err
		}
	default:
		return Credentials{}, fmt.Errorf("%w: expected a key-value mapping, got %T", ErrInvalidConfiguration, raw)
	}

	return creds, nil
}

func stringValue(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidConfiguration, key, v)
	}

	return s, nil
}

// Attributes holds search filter key-value pairs forwarded verbatim to the API.
type Attributes map[string]string

// DefaultAttributes returns the default search filters.
func DefaultAttributes() Attributes {
	return Attributes{
		FilterLanguage: "1",
		FilterType:     "1",
		FilterLimit:    "5",
	}
}

// Merge returns a new filter set with overrides applied on top of a.
// Neither a nor overrides is modified.
func (a Attributes) Merge(overrides map[string]string) Attributes {
	merged := make(Attributes, len(a)+len(overrides))
	maps.Copy(merged, a)
	maps.Copy(merged, overrides)

	return merged
}

// Clone returns an independent copy of the filter set.
func (a Attributes) Clone() Attributes {
	return a.Merge(nil)
}
