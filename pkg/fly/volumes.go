package fly

import (
	"context"
	"net/http"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

// ListVolumes lists all volumes of an app.
func (c *Client) ListVolumes(ctx context.Context, appName types.AppName) ([]types.Volume, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/apps/"+appName.String()+"/volumes", nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var volumes []types.Volume
	if err := decode(body, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

// CreateVolume creates a volume and returns the provider's record.
func (c *Client) CreateVolume(ctx context.Context, appName types.AppName, req types.VolumeCreateRequest) (*types.Volume, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/apps/"+appName.String()+"/volumes", req)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var volume types.Volume
	if err := decode(body, &volume); err != nil {
		return nil, err
	}
	return &volume, nil
}

// GetVolume fetches one volume by id.
func (c *Client) GetVolume(ctx context.Context, appName types.AppName, volumeID types.VolumeID) (*types.Volume, error) {
	path := "/apps/" + appName.String() + "/volumes/" + volumeID.String()
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var volume types.Volume
	if err := decode(body, &volume); err != nil {
		return nil, err
	}
	return &volume, nil
}

// DeleteVolume deletes a volume by id.
func (c *Client) DeleteVolume(ctx context.Context, appName types.AppName, volumeID types.VolumeID) error {
	path := "/apps/" + appName.String() + "/volumes/" + volumeID.String()
	status, body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(status, body)
	}
	return nil
}

// ExtendVolume grows a volume to the given size. Shrinking is not supported
// by the provider.
func (c *Client) ExtendVolume(ctx context.Context, appName types.AppName, volumeID types.VolumeID, newSizeGB uint32) error {
	payload := struct {
		SizeGB uint32 `json:"size_gb"`
	}{SizeGB: newSizeGB}

	path := "/apps/" + appName.String() + "/volumes/" + volumeID.String() + "/extend"
	status, body, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(status, body)
	}
	return nil
}
