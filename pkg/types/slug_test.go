package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain lowercase", input: "myapp"},
		{name: "with hyphen", input: "my-app-2"},
		{name: "uppercase allowed", input: "MyApp"},
		{name: "digits only", input: "12345"},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "slash rejected", input: "my/app", wantErr: true},
		{name: "dot rejected", input: "my.app", wantErr: true},
		{name: "space rejected", input: "my app", wantErr: true},
		{name: "path traversal rejected", input: "../apps", wantErr: true},
		{name: "query injection rejected", input: "app?force=true", wantErr: true},
		{name: "unicode rejected", input: "äpp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAppName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrIllegalSlug))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestSlugTypesShareValidation(t *testing.T) {
	// Every identifier type rejects the same illegal input.
	bad := "not/a/slug"

	_, err := NewOrgSlug(bad)
	assert.ErrorIs(t, err, ErrIllegalSlug)

	_, err = NewSecretKey(bad)
	assert.ErrorIs(t, err, ErrIllegalSlug)

	_, err = NewVolumeID(bad)
	assert.ErrorIs(t, err, ErrIllegalSlug)

	_, err = NewMachineID(bad)
	assert.ErrorIs(t, err, ErrIllegalSlug)
}
