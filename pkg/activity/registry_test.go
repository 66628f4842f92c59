package activity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	handler := func(ctx context.Context, input json.RawMessage) (any, error) { return nil, nil }

	assert.NoError(t, reg.Register("apps.put", handler))
	err := reg.Register("apps.put", handler)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestNamesAreSorted(t *testing.T) {
	reg := NewRegistry()
	handler := func(ctx context.Context, input json.RawMessage) (any, error) { return nil, nil }

	reg.MustRegister("machines.create", handler)
	reg.MustRegister("apps.put", handler)
	reg.MustRegister("ips.ensure", handler)

	assert.Equal(t, []string{"apps.put", "ips.ensure", "machines.create"}, reg.Names())
}

func TestInvokeSuccess(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("echo", func(ctx context.Context, input json.RawMessage) (any, error) {
		var payload map[string]string
		if err := json.Unmarshal(input, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})

	result, err := reg.Invoke(context.Background(), "echo", json.RawMessage(`{"key":"value"}`))
	assert.NoError(t, err)
	assert.Equal(t, "echo", result.Activity)
	assert.Empty(t, result.Error)
	assert.JSONEq(t, `{"key":"value"}`, string(result.Output))

	_, parseErr := uuid.Parse(result.InvocationID)
	assert.NoError(t, parseErr)
}

func TestInvokeHandlerErrorIsInResult(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("fail", func(ctx context.Context, input json.RawMessage) (any, error) {
		return nil, errors.New("machine not found")
	})

	result, err := reg.Invoke(context.Background(), "fail", nil)
	assert.NoError(t, err)
	assert.Equal(t, "machine not found", result.Error)
	assert.Nil(t, result.Output)
}

func TestInvokeUnknownActivity(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Invoke(context.Background(), "nope", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activity 'nope'")
}

func TestInvokeNilOutputOmitted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("noop", func(ctx context.Context, input json.RawMessage) (any, error) {
		return nil, nil
	})

	result, err := reg.Invoke(context.Background(), "noop", nil)
	assert.NoError(t, err)
	assert.Nil(t, result.Output)
	assert.Empty(t, result.Error)
}

func TestInvocationIDsAreUnique(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("noop", func(ctx context.Context, input json.RawMessage) (any, error) {
		return nil, nil
	})

	first, err := reg.Invoke(context.Background(), "noop", nil)
	assert.NoError(t, err)
	second, err := reg.Invoke(context.Background(), "noop", nil)
	assert.NoError(t, err)
	assert.NotEqual(t, first.InvocationID, second.InvocationID)
}
