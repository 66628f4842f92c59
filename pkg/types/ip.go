package types

import "strings"

// privateV6Prefix marks Fly private-network IPv6 addresses. The list
// endpoint does not label private entries, so classification goes by this
// prefix.
const privateV6Prefix = "fdaa"

// IPKind is the address family / visibility of an IP assignment.
type IPKind string

const (
	IPKindV4        IPKind = "ipv4"
	IPKindV6        IPKind = "ipv6"
	IPKindV6Private IPKind = "ipv6-private"
)

// IPVariant is the caller-facing description of an IP assignment class.
// Shared is meaningful for IPv4 only. Region is nil when the assignment is
// not pinned to a region; private IPv6 never carries one.
type IPVariant struct {
	Kind   IPKind  `json:"kind"`
	Shared bool    `json:"shared,omitempty"`
	Region *Region `json:"region,omitempty"`
}

// IPRequest asks for one IP assignment of the given variant.
type IPRequest struct {
	Variant IPVariant `json:"variant"`
}

// IPDetail is one observed IP assignment.
type IPDetail struct {
	IP      string    `json:"ip"`
	Variant IPVariant `json:"variant"`
}

// ClassifyIP derives the variant of a listed address. shared and region come
// from the wire record; family and visibility come from the address itself.
func ClassifyIP(ip string, shared bool, region *Region) IPVariant {
	if strings.Contains(ip, ":") {
		if strings.HasPrefix(ip, privateV6Prefix) {
			return IPVariant{Kind: IPKindV6Private}
		}
		return IPVariant{Kind: IPKindV6, Region: region}
	}
	return IPVariant{Kind: IPKindV4, Shared: shared, Region: region}
}
