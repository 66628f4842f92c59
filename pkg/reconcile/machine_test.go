package reconcile

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obeli-sk/components-flyio/pkg/fly"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

type fakeMachineAPI struct {
	createID  string
	createErr error
	calls     int
}

func (f *fakeMachineAPI) CreateMachine(_ context.Context, _ types.AppName, _ string, _ *types.MachineConfig, _ *types.Region) (string, error) {
	f.calls++
	return f.createID, f.createErr
}

func TestMachineIDFromConflict(t *testing.T) {
	wellFormed := `already_exists: unique machine name violation, machine ID 32876249a30918 already exists with name "foo"`

	tests := []struct {
		name   string
		msg    string
		wantID string
		wantOK bool
	}{
		{
			name:   "well-formed message",
			msg:    wellFormed,
			wantID: "32876249a30918",
			wantOK: true,
		},
		{
			name: "prefix not at offset zero",
			msg:  "error: " + wellFormed,
		},
		{
			name: "missing suffix",
			msg:  `already_exists: unique machine name violation, machine ID 32876249a30918`,
		},
		{
			name: "suffix before id",
			msg:  ` already exists with name already_exists: unique machine name violation, machine ID 32876249a30918`,
		},
		{
			name: "empty message",
			msg:  "",
		},
		{
			name: "prefix alone",
			msg:  conflictPrefix,
		},
		{
			name: "unrelated conflict message",
			msg:  "already_exists: something entirely different",
		},
		{
			name:   "id with unusual characters is returned verbatim",
			msg:    conflictPrefix + "abc-123_XYZ" + conflictSuffix + `"bar"`,
			wantID: "abc-123_XYZ",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := machineIDFromConflict(tt.msg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCreateMachinePlainSuccess(t *testing.T) {
	machines := &fakeMachineAPI{createID: "9080524f610e83"}
	r := NewWith(machines, nil, nil)

	id, err := r.CreateMachine(context.Background(), "demo", "worker-1", &types.MachineConfig{Image: "img"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "9080524f610e83", id)
	assert.Equal(t, 1, machines.calls)
}

func TestCreateMachineConflictReturnsExistingID(t *testing.T) {
	machines := &fakeMachineAPI{
		createErr: &fly.APIError{
			Status: http.StatusConflict,
			Body:   `{"error":"already_exists: unique machine name violation, machine ID 32876249a30918 already exists with name \"foo\""}`,
		},
	}
	r := NewWith(machines, nil, nil)

	id, err := r.CreateMachine(context.Background(), "demo", "foo", &types.MachineConfig{Image: "img"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "32876249a30918", id)
	// The existing id comes from the conflict body alone; no probe calls.
	assert.Equal(t, 1, machines.calls)
}

func TestCreateMachineConflictWithUnparsableMessage(t *testing.T) {
	machines := &fakeMachineAPI{
		createErr: &fly.APIError{
			Status: http.StatusConflict,
			Body:   `{"error":"something else entirely"}`,
		},
	}
	r := NewWith(machines, nil, nil)

	_, err := r.CreateMachine(context.Background(), "demo", "foo", &types.MachineConfig{Image: "img"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "machine id cannot be parsed")
}

func TestCreateMachineConflictWithNonJSONBody(t *testing.T) {
	machines := &fakeMachineAPI{
		createErr: &fly.APIError{Status: http.StatusConflict, Body: "<html>gateway error</html>"},
	}
	r := NewWith(machines, nil, nil)

	_, err := r.CreateMachine(context.Background(), "demo", "foo", &types.MachineConfig{Image: "img"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse error response")
	assert.Contains(t, err.Error(), "<html>gateway error</html>")
}

func TestCreateMachineOtherStatusPropagates(t *testing.T) {
	machines := &fakeMachineAPI{
		createErr: &fly.APIError{Status: http.StatusInternalServerError, Body: "boom"},
	}
	r := NewWith(machines, nil, nil)

	_, err := r.CreateMachine(context.Background(), "demo", "foo", &types.MachineConfig{Image: "img"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestCreateMachineTransportErrorPropagates(t *testing.T) {
	machines := &fakeMachineAPI{createErr: assert.AnError}
	r := NewWith(machines, nil, nil)

	_, err := r.CreateMachine(context.Background(), "demo", "foo", &types.MachineConfig{Image: "img"}, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
