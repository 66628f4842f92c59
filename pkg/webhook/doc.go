/*
Package webhook exposes an HTTP endpoint for secret updates.

POST / accepts {"app_name", "name", "value"} and stages the secret on the
named app through the provider API. Slugs are validated before any remote
call; a provider failure maps to 502 so the sender can retry.
*/
package webhook
