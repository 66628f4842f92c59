package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/obeli-sk/components-flyio/pkg/fly"
	"github.com/obeli-sk/components-flyio/pkg/metrics"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

// Anchors of the provider's 409 conflict message. The machine id of the
// existing machine is embedded between them.
const (
	conflictPrefix = "already_exists: unique machine name violation, machine ID "
	conflictSuffix = " already exists with name "
)

// machineIDFromConflict extracts the existing machine id from a 409 error
// message. The prefix must sit at offset 0 and the suffix must follow the
// id; a message merely containing the prefix elsewhere does not match, so
// wrapped or annotated error strings never produce a false positive.
func machineIDFromConflict(msg string) (string, bool) {
	if !strings.HasPrefix(msg, conflictPrefix) {
		return "", false
	}
	rest := msg[len(conflictPrefix):]
	end := strings.Index(rest, conflictSuffix)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// CreateMachine makes "create machine with name" idempotent. The backend
// treats (app, name) as a unique key and answers a retried create with 409;
// in that case the id embedded in the conflict message is returned as the
// outcome, on the assumption that the existing machine is the one the
// caller intended. The existing machine's configuration is NOT compared
// against the requested one. No retries happen here; retry policy belongs
// to the workflow engine driving the activity.
func (r *Reconciler) CreateMachine(ctx context.Context, appName types.AppName, machineName string, machineConfig *types.MachineConfig, region *types.Region) (string, error) {
	machineID, err := r.machines.CreateMachine(ctx, appName, machineName, machineConfig, region)
	if err == nil {
		return machineID, nil
	}

	var apiErr *fly.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		return "", err
	}

	var conflict struct {
		Error string `json:"error"`
	}
	if jsonErr := json.Unmarshal([]byte(apiErr.Body), &conflict); jsonErr != nil {
		return "", fmt.Errorf("cannot parse error response `%s`: %w", apiErr.Body, jsonErr)
	}

	existingID, ok := machineIDFromConflict(conflict.Error)
	if !ok {
		return "", fmt.Errorf("machine id cannot be parsed from 409 error response: `%s`", conflict.Error)
	}

	metrics.MachineCreateConflictsTotal.Inc()
	r.logger.Info().
		Str("app", appName.String()).
		Str("machine_name", machineName).
		Str("machine_id", existingID).
		Msg("machine already exists, returning existing id")

	return existingID, nil
}
