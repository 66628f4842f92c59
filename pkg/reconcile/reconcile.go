package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/obeli-sk/components-flyio/pkg/fly"
	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

// MachineAPI is the slice of the provider surface the machine conflict
// resolver needs.
type MachineAPI interface {
	CreateMachine(ctx context.Context, appName types.AppName, machineName string, machineConfig *types.MachineConfig, region *types.Region) (string, error)
}

// IPAPI is the slice of the provider surface the IP allocation reconciler
// needs. Release must treat an already-absent address as success.
type IPAPI interface {
	AllocateIP(ctx context.Context, appName types.AppName, req types.IPRequest) (string, error)
	ListIPs(ctx context.Context, appName types.AppName) ([]types.IPDetail, error)
	ReleaseIP(ctx context.Context, appName types.AppName, ip string) error
}

// AppAPI is the slice of the provider surface the app put-if-absent
// resolver needs. GetApp reports a missing app as (nil, nil).
type AppAPI interface {
	CreateApp(ctx context.Context, orgSlug types.OrgSlug, appName types.AppName) (*types.App, error)
	GetApp(ctx context.Context, appName types.AppName) (*types.App, error)
}

// Reconciler makes the provider's non-idempotent create/allocate operations
// safe to retry under at-least-once execution. It is stateless: every
// decision is made against a fresh read of remote state, and nothing is
// remembered between calls. Concurrent calls for different resources are
// safe; concurrent calls for the same resource converge through the same
// probe-and-compensate protocols rather than through mutual exclusion.
type Reconciler struct {
	machines MachineAPI
	ips      IPAPI
	apps     AppAPI
	logger   zerolog.Logger
}

// New creates a Reconciler over the given provider client.
func New(client *fly.Client) *Reconciler {
	return NewWith(client, client, client)
}

// NewWith creates a Reconciler over explicit API slices. Tests use this to
// substitute fakes.
func NewWith(machines MachineAPI, ips IPAPI, apps AppAPI) *Reconciler {
	return &Reconciler{
		machines: machines,
		ips:      ips,
		apps:     apps,
		logger:   log.WithComponent("reconcile"),
	}
}
