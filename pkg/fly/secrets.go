package fly

import (
	"context"
	"fmt"
	"net/http"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

// ListSecrets lists the secrets of an app. Values are never returned.
func (c *Client) ListSecrets(ctx context.Context, appName types.AppName) ([]types.Secret, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/apps/"+appName.String()+"/secrets", nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, fmt.Errorf("failed to list secrets for app '%s': %w", appName, apiError(status, body))
	}

	var list struct {
		Secrets []types.Secret `json:"secrets"`
	}
	if err := decode(body, &list); err != nil {
		return nil, err
	}
	return list.Secrets, nil
}

// SetSecret creates or replaces one secret value.
func (c *Client) SetSecret(ctx context.Context, appName types.AppName, key types.SecretKey, value string) error {
	payload := struct {
		Value string `json:"value"`
	}{Value: value}

	path := "/apps/" + appName.String() + "/secrets/" + key.String()
	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if !success(status) {
		return fmt.Errorf("failed to put secret '%s' for app '%s': %w", key, appName, apiError(status, body))
	}
	return nil
}

// DeleteSecret removes one secret.
func (c *Client) DeleteSecret(ctx context.Context, appName types.AppName, key types.SecretKey) error {
	path := "/apps/" + appName.String() + "/secrets/" + key.String()
	status, body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return fmt.Errorf("failed to delete secret '%s' for app '%s': %w", key, appName, apiError(status, body))
	}
	return nil
}
