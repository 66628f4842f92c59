package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/obeli-sk/components-flyio/pkg/metrics"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

// EnsureIP makes "allocate one IP of this variant" safe to retry even
// though the allocation endpoint allocates unconditionally on every call.
//
// preExisting is the set of addresses the caller already knew about before
// this attempt, taken from the caller's own durable execution state. The
// reconciler keeps no memory across retries, so this set is the only link
// between attempts: after allocating, the full current assignment list is
// fetched and every address outside preExisting ∪ {allocated} is released
// as a leftover of an earlier attempt that crashed before it was recorded.
// Addresses that vanished from the remote list are released too; releasing
// an absent address is a no-op by the IPAPI contract.
//
// The allocated address is returned regardless of how much cleanup ran.
func (r *Reconciler) EnsureIP(ctx context.Context, appName types.AppName, req types.IPRequest, preExisting []string) (string, error) {
	allocated, err := r.ips.AllocateIP(ctx, appName, req)
	if err != nil {
		return "", err
	}

	expected := make(map[string]struct{}, len(preExisting)+1)
	for _, ip := range preExisting {
		expected[ip] = struct{}{}
	}
	expected[allocated] = struct{}{}

	// Always a fresh read; the decision below must reflect actual remote
	// state at this point, not anything cached.
	observedList, err := r.ips.ListIPs(ctx, appName)
	if err != nil {
		return "", fmt.Errorf("failed to list ip assignments after allocation: %w", err)
	}
	observed := make(map[string]struct{}, len(observedList))
	for _, detail := range observedList {
		observed[detail.IP] = struct{}{}
	}

	for _, ip := range symmetricDifference(expected, observed) {
		r.logger.Warn().
			Str("app", appName.String()).
			Str("ip", ip).
			Msg("releasing redundant ip assignment")
		if err := r.ips.ReleaseIP(ctx, appName, ip); err != nil {
			return "", fmt.Errorf("failed to release redundant ip %s: %w", ip, err)
		}
		metrics.IPReleasesTotal.Inc()
	}

	return allocated, nil
}

// symmetricDifference returns the addresses present in exactly one of the
// two sets, sorted for deterministic release order.
func symmetricDifference(a, b map[string]struct{}) []string {
	var diff []string
	for ip := range a {
		if _, ok := b[ip]; !ok {
			diff = append(diff, ip)
		}
	}
	for ip := range b {
		if _, ok := a[ip]; !ok {
			diff = append(diff, ip)
		}
	}
	sort.Strings(diff)
	return diff
}
