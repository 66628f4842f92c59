/*
Package state provides BoltDB-backed bookkeeping for the activity caller.

The store records, per app, which IP assignments and machines earlier
invocations produced. A retried ip-ensure invocation reads this ledger to
report the addresses it already holds, so that reconciliation can tell a
leaked allocation apart from one the caller owns on purpose.

This is strictly caller-side state. The reconciliation layer never reads
it; it works only from what the caller passes in and what the remote API
reports.

Data is stored as JSON values in per-concern buckets, keyed by
"<app>/<resource>". Reads use db.View, writes use db.Update; deletes are
idempotent.
*/
package state
