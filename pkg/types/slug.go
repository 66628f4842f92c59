package types

import (
	"errors"
	"fmt"
)

// ErrIllegalSlug is returned when a caller-supplied identifier contains
// characters outside the allowed set. Identifiers are interpolated into
// request URLs, so anything else is rejected before a request is built.
var ErrIllegalSlug = errors.New("illegal slug")

// validateSlug accepts ASCII alphanumerics and hyphens only.
func validateSlug(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty identifier", ErrIllegalSlug)
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return fmt.Errorf("%w: %q", ErrIllegalSlug, s)
		}
	}
	return nil
}

// AppName identifies a Fly app. It is validated on construction.
type AppName string

// NewAppName validates s and returns it as an AppName.
func NewAppName(s string) (AppName, error) {
	if err := validateSlug(s); err != nil {
		return "", err
	}
	return AppName(s), nil
}

func (a AppName) String() string { return string(a) }

// OrgSlug identifies a Fly organization.
type OrgSlug string

// NewOrgSlug validates s and returns it as an OrgSlug.
func NewOrgSlug(s string) (OrgSlug, error) {
	if err := validateSlug(s); err != nil {
		return "", err
	}
	return OrgSlug(s), nil
}

func (o OrgSlug) String() string { return string(o) }

// SecretKey identifies a secret within an app.
type SecretKey string

// NewSecretKey validates s and returns it as a SecretKey.
func NewSecretKey(s string) (SecretKey, error) {
	if err := validateSlug(s); err != nil {
		return "", err
	}
	return SecretKey(s), nil
}

func (k SecretKey) String() string { return string(k) }

// VolumeID identifies a volume within an app.
type VolumeID string

// NewVolumeID validates s and returns it as a VolumeID.
func NewVolumeID(s string) (VolumeID, error) {
	if err := validateSlug(s); err != nil {
		return "", err
	}
	return VolumeID(s), nil
}

func (v VolumeID) String() string { return string(v) }

// MachineID identifies a machine within an app.
type MachineID string

// NewMachineID validates s and returns it as a MachineID.
func NewMachineID(s string) (MachineID, error) {
	if err := validateSlug(s); err != nil {
		return "", err
	}
	return MachineID(s), nil
}

func (m MachineID) String() string { return string(m) }
