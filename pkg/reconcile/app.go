package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/obeli-sk/components-flyio/pkg/fly"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

// OrgMismatchError reports that the app name is taken by a different
// organization. This is a genuine naming collision, never a retry artifact,
// and is never silently accepted.
type OrgMismatchError struct {
	AppName   types.AppName
	Actual    types.OrgSlug
	Requested types.OrgSlug
}

func (e *OrgMismatchError) Error() string {
	return fmt.Sprintf("app '%s' already exists but belongs to organization '%s', not the requested '%s'",
		e.AppName, e.Actual, e.Requested)
}

// EnsureApp makes "app with this name exists under this org" idempotent.
// The create endpoint rejects a taken name with 422 regardless of owner, so
// a 422 is followed by a by-name probe: if the app exists under the
// requested organization, an earlier retry already created it and the
// probed record is the outcome; if it exists under another organization,
// that is an OrgMismatchError. If the probe finds nothing, the original
// create failure is the authoritative error; the probe is only diagnostic
// and its own failure is never reported in its place.
func (r *Reconciler) EnsureApp(ctx context.Context, orgSlug types.OrgSlug, appName types.AppName) (*types.App, error) {
	app, createErr := r.apps.CreateApp(ctx, orgSlug, appName)
	if createErr == nil {
		return app, nil
	}

	var apiErr *fly.APIError
	if !errors.As(createErr, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		return nil, createErr
	}

	probed, probeErr := r.apps.GetApp(ctx, appName)
	if probeErr != nil || probed == nil {
		// The app is not there after all; the create failure is the true
		// cause.
		return nil, createErr
	}

	if probed.OrgSlug != orgSlug {
		return nil, &OrgMismatchError{
			AppName:   appName,
			Actual:    probed.OrgSlug,
			Requested: orgSlug,
		}
	}

	r.logger.Info().
		Str("app", appName.String()).
		Str("org", orgSlug.String()).
		Msg("app already exists in requested org, returning existing record")

	return probed, nil
}
