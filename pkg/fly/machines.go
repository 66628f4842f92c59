package fly

import (
	"context"
	"fmt"
	"net/http"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

// machineCreateRequest is the wire shape of machine create and update calls.
type machineCreateRequest struct {
	Name   string               `json:"name,omitempty"`
	Config *types.MachineConfig `json:"config"`
	Region *types.Region        `json:"region,omitempty"`
}

// machineIDResponse is the create/update response; only the id matters.
type machineIDResponse struct {
	ID string `json:"id"`
}

// ListMachines lists all machines of an app.
func (c *Client) ListMachines(ctx context.Context, appName types.AppName) ([]types.Machine, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/apps/"+appName.String()+"/machines", nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var machines []types.Machine
	if err := decode(body, &machines); err != nil {
		return nil, err
	}
	return machines, nil
}

// GetMachine fetches one machine. A 404 is reported as (nil, nil).
func (c *Client) GetMachine(ctx context.Context, appName types.AppName, machineID types.MachineID) (*types.Machine, error) {
	path := "/apps/" + appName.String() + "/machines/" + machineID.String()
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case success(status):
		var machine types.Machine
		if err := decode(body, &machine); err != nil {
			return nil, err
		}
		return &machine, nil
	case status == http.StatusNotFound:
		return nil, nil
	default:
		return nil, apiError(status, body)
	}
}

// CreateMachine issues a raw creation request and returns the new machine
// id. The endpoint treats (app, name) as a unique key; a collision surfaces
// as an *APIError with status 409 for the reconciliation layer to resolve.
func (c *Client) CreateMachine(ctx context.Context, appName types.AppName, machineName string, machineConfig *types.MachineConfig, region *types.Region) (string, error) {
	payload := machineCreateRequest{
		Name:   machineName,
		Config: machineConfig,
		Region: region,
	}
	status, body, err := c.do(ctx, http.MethodPost, "/apps/"+appName.String()+"/machines", payload)
	if err != nil {
		return "", err
	}
	if !success(status) {
		return "", apiError(status, body)
	}

	var created machineIDResponse
	if err := decode(body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateMachine replaces the configuration of an existing machine. The
// response must echo the same machine id back.
func (c *Client) UpdateMachine(ctx context.Context, appName types.AppName, machineID types.MachineID, machineConfig *types.MachineConfig, region *types.Region) error {
	payload := machineCreateRequest{
		Config: machineConfig,
		Region: region,
	}
	path := "/apps/" + appName.String() + "/machines/" + machineID.String()
	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(status, body)
	}

	var updated machineIDResponse
	if err := decode(body, &updated); err != nil {
		return err
	}
	if updated.ID != machineID.String() {
		return fmt.Errorf("unexpected id returned, expected %s got %s", machineID, updated.ID)
	}
	return nil
}

// changeMachine issues a bodyless state-change POST (start, stop, ...).
func (c *Client) changeMachine(ctx context.Context, appName types.AppName, machineID types.MachineID, action string) error {
	path := "/apps/" + appName.String() + "/machines/" + machineID.String() + "/" + action
	status, body, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(status, body)
	}
	return nil
}

// StartMachine starts a stopped or suspended machine.
func (c *Client) StartMachine(ctx context.Context, appName types.AppName, machineID types.MachineID) error {
	return c.changeMachine(ctx, appName, machineID, "start")
}

// StopMachine stops a running machine.
func (c *Client) StopMachine(ctx context.Context, appName types.AppName, machineID types.MachineID) error {
	return c.changeMachine(ctx, appName, machineID, "stop")
}

// SuspendMachine suspends a running machine, preserving its memory state.
func (c *Client) SuspendMachine(ctx context.Context, appName types.AppName, machineID types.MachineID) error {
	return c.changeMachine(ctx, appName, machineID, "suspend")
}

// RestartMachine restarts a machine.
func (c *Client) RestartMachine(ctx context.Context, appName types.AppName, machineID types.MachineID) error {
	return c.changeMachine(ctx, appName, machineID, "restart")
}

// DeleteMachine deletes a machine, optionally forcing removal while running.
func (c *Client) DeleteMachine(ctx context.Context, appName types.AppName, machineID types.MachineID, force bool) error {
	path := fmt.Sprintf("/apps/%s/machines/%s?force=%t", appName, machineID, force)
	status, body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(status, body)
	}
	return nil
}

// ExecMachine runs a command inside a machine and returns its output.
func (c *Client) ExecMachine(ctx context.Context, appName types.AppName, machineID types.MachineID, command []string) (*types.ExecResult, error) {
	payload := struct {
		Command []string `json:"command"`
	}{Command: command}

	path := "/apps/" + appName.String() + "/machines/" + machineID.String() + "/exec"
	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var result types.ExecResult
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
