package fly

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

// appDetail is the by-name lookup response shape.
type appDetail struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization struct {
		Slug string `json:"slug"`
	} `json:"organization"`
}

// GetApp fetches an app by name. A 404 means the app does not exist and is
// reported as (nil, nil).
func (c *Client) GetApp(ctx context.Context, appName types.AppName) (*types.App, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/apps/"+appName.String(), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case success(status):
		var detail appDetail
		if err := decode(body, &detail); err != nil {
			return nil, err
		}
		return &types.App{
			ID:      detail.ID,
			Name:    detail.Name,
			OrgSlug: types.OrgSlug(detail.Organization.Slug),
		}, nil
	case status == http.StatusNotFound:
		return nil, nil
	default:
		return nil, apiError(status, body)
	}
}

// CreateApp creates an app under the given organization. A name collision
// surfaces as an *APIError with status 422; resolving it is the
// reconciliation layer's job.
func (c *Client) CreateApp(ctx context.Context, orgSlug types.OrgSlug, appName types.AppName) (*types.App, error) {
	payload := struct {
		AppName string `json:"app_name"`
		OrgSlug string `json:"org_slug"`
	}{
		AppName: appName.String(),
		OrgSlug: orgSlug.String(),
	}

	status, body, err := c.do(ctx, http.MethodPost, "/apps", payload)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := decode(body, &created); err != nil {
		return nil, err
	}
	return &types.App{
		ID:      created.ID,
		Name:    appName.String(),
		OrgSlug: orgSlug,
	}, nil
}

// ListApps lists all apps under an organization.
func (c *Client) ListApps(ctx context.Context, orgSlug types.OrgSlug) ([]types.App, error) {
	path := "/apps?org_slug=" + url.QueryEscape(orgSlug.String())
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var list struct {
		Apps []types.App `json:"apps"`
	}
	if err := decode(body, &list); err != nil {
		return nil, err
	}
	return list.Apps, nil
}

// DeleteApp deletes an app, optionally forcing removal of its machines.
func (c *Client) DeleteApp(ctx context.Context, appName types.AppName, force bool) error {
	path := "/apps/" + appName.String()
	if force {
		path += "?force=true"
	}
	status, body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return fmt.Errorf("failed to delete app '%s': %w", appName, apiError(status, body))
	}
	return nil
}
