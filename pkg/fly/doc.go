/*
Package fly provides typed HTTP bindings for the Fly Machines REST API:
apps, machines, volumes, secrets, and IP assignments.

The bindings are deliberately mechanical. Each method builds one request,
sends it, and maps the response into the canonical types of pkg/types. A
non-2xx response becomes an *APIError carrying the status code and the raw
body verbatim; callers that need protocol-level recovery (the 409 machine
name conflict, the 422 app name collision) branch on that error in the
reconcile package. No method retries, caches, or recovers on its own.

Two provider quirks are absorbed at this layer:

  - the IP list endpoint reports the sentinel region "global" for
    assignments not pinned to a region; it decodes to nil, never to a
    literal value;
  - IPv6 assignments are not labeled private or public, so they are
    classified by the fdaa address prefix (see types.ClassifyIP).

A handful of response contracts are part of the protocol: GETs of a single
app or machine map 404 to (nil, nil); ReleaseIP maps 404 to success, making
deletes idempotent; UpdateMachine verifies the echoed machine id.
*/
package fly
