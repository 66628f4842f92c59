package fly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

// Wire names of the allocation endpoint's "type" field.
const (
	ipTypeV4        = "v4"
	ipTypeSharedV4  = "shared_v4"
	ipTypeV6        = "v6"
	ipTypePrivateV6 = "private_v6"
)

// wireIPType maps a caller-facing variant onto the endpoint's type tag.
func wireIPType(v types.IPVariant) (string, *types.Region, error) {
	switch v.Kind {
	case types.IPKindV4:
		if v.Shared {
			return ipTypeSharedV4, v.Region, nil
		}
		return ipTypeV4, v.Region, nil
	case types.IPKindV6:
		return ipTypeV6, v.Region, nil
	case types.IPKindV6Private:
		return ipTypePrivateV6, nil, nil
	default:
		return "", nil, fmt.Errorf("unknown ip variant %q", v.Kind)
	}
}

// AllocateIP performs one allocation and returns the newly minted address.
// The endpoint has no idempotency key: every call allocates. Retry-safe
// allocation lives in the reconcile package.
func (c *Client) AllocateIP(ctx context.Context, appName types.AppName, req types.IPRequest) (string, error) {
	ipType, region, err := wireIPType(req.Variant)
	if err != nil {
		return "", err
	}

	payload := struct {
		Type   string        `json:"type"`
		Region *types.Region `json:"region,omitempty"`
	}{Type: ipType, Region: region}

	status, body, err := c.do(ctx, http.MethodPost, "/apps/"+appName.String()+"/ip_assignments", payload)
	if err != nil {
		return "", err
	}
	if !success(status) {
		return "", apiError(status, body)
	}

	var allocated struct {
		IP string `json:"ip"`
	}
	if err := decode(body, &allocated); err != nil {
		return "", err
	}
	return allocated.IP, nil
}

// listRegion decodes the region field of list responses. The provider
// reports the sentinel "global" for assignments not pinned to a region;
// that decodes to nil, not to a region value.
type listRegion struct {
	region *types.Region
}

func (l *listRegion) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || strings.EqualFold(*s, "global") {
		l.region = nil
		return nil
	}
	region, err := types.ParseRegion(*s)
	if err != nil {
		return err
	}
	l.region = &region
	return nil
}

// ListIPs returns the full current list of IP assignments for an app.
func (c *Client) ListIPs(ctx context.Context, appName types.AppName) ([]types.IPDetail, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/apps/"+appName.String()+"/ip_assignments", nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var list struct {
		IPs []struct {
			IP     string     `json:"ip"`
			Region listRegion `json:"region"`
			Shared *bool      `json:"shared"`
		} `json:"ips"`
	}
	if err := decode(body, &list); err != nil {
		return nil, err
	}

	details := make([]types.IPDetail, 0, len(list.IPs))
	for _, entry := range list.IPs {
		shared := entry.Shared != nil && *entry.Shared
		details = append(details, types.IPDetail{
			IP:      entry.IP,
			Variant: types.ClassifyIP(entry.IP, shared, entry.Region.region),
		})
	}
	return details, nil
}

// ReleaseIP releases one IP assignment. A 404 means the address is already
// gone, which on a retry is exactly the intended end state, so it is
// treated as success.
func (c *Client) ReleaseIP(ctx context.Context, appName types.AppName, ip string) error {
	path := "/apps/" + appName.String() + "/ip_assignments/" + url.PathEscape(ip)
	status, body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if success(status) || status == http.StatusNotFound {
		return nil
	}
	return apiError(status, body)
}
