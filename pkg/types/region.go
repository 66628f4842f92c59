package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Region is a Fly region code as it appears on the wire ("ams", "fra", ...).
type Region string

const (
	RegionAms Region = "ams"
	RegionArn Region = "arn"
	RegionAtl Region = "atl"
	RegionBog Region = "bog"
	RegionBom Region = "bom"
	RegionBos Region = "bos"
	RegionCdg Region = "cdg"
	RegionDen Region = "den"
	RegionDfw Region = "dfw"
	RegionEwr Region = "ewr"
	RegionEze Region = "eze"
	RegionFra Region = "fra"
	RegionGdl Region = "gdl"
	RegionGig Region = "gig"
	RegionGru Region = "gru"
	RegionHkg Region = "hkg"
	RegionIad Region = "iad"
	RegionJnb Region = "jnb"
	RegionLax Region = "lax"
	RegionLhr Region = "lhr"
	RegionMad Region = "mad"
	RegionMia Region = "mia"
	RegionNrt Region = "nrt"
	RegionOrd Region = "ord"
	RegionOtp Region = "otp"
	RegionPhx Region = "phx"
	RegionQro Region = "qro"
	RegionScl Region = "scl"
	RegionSea Region = "sea"
	RegionSin Region = "sin"
	RegionSjc Region = "sjc"
	RegionSyd Region = "syd"
	RegionWaw Region = "waw"
	RegionYul Region = "yul"
	RegionYyz Region = "yyz"
)

var regions = map[Region]struct{}{
	RegionAms: {}, RegionArn: {}, RegionAtl: {}, RegionBog: {}, RegionBom: {},
	RegionBos: {}, RegionCdg: {}, RegionDen: {}, RegionDfw: {}, RegionEwr: {},
	RegionEze: {}, RegionFra: {}, RegionGdl: {}, RegionGig: {}, RegionGru: {},
	RegionHkg: {}, RegionIad: {}, RegionJnb: {}, RegionLax: {}, RegionLhr: {},
	RegionMad: {}, RegionMia: {}, RegionNrt: {}, RegionOrd: {}, RegionOtp: {},
	RegionPhx: {}, RegionQro: {}, RegionScl: {}, RegionSea: {}, RegionSin: {},
	RegionSjc: {}, RegionSyd: {}, RegionWaw: {}, RegionYul: {}, RegionYyz: {},
}

// Valid reports whether r is a known region code.
func (r Region) Valid() bool {
	_, ok := regions[r]
	return ok
}

// ParseRegion parses a region code, folding case.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown region %q", s)
	}
	return r, nil
}

// UnmarshalJSON decodes a region code, folding case and rejecting unknown
// values.
func (r *Region) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRegion(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
