/*
Package types defines the canonical typed results and request shapes shared
by the Fly API bindings, the reconciliation layer, and the activity surface.

Identifiers that end up inside request URLs (app names, org slugs, secret
keys, volume and machine ids) are represented as validated string types
constructed through NewAppName, NewOrgSlug and friends. Construction rejects
anything outside ASCII alphanumerics plus hyphen with ErrIllegalSlug, so a
value of one of these types is always safe to interpolate into a path.

Enum-like fields (Region, CPUKind, RestartPolicy, PortHandler, ...) are
typed strings whose constant values match the provider's wire form, so they
marshal with plain encoding/json. Region additionally validates on decode.
*/
package types
