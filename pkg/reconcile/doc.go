/*
Package reconcile makes the provider's non-idempotent create and allocate
operations safe to retry under at-least-once execution semantics.

A workflow engine retries a failed activity from the top. If the previous
attempt crashed after its side effect landed remotely but before the result
was durably recorded, a naive retry would duplicate the side effect: a
second machine, a second app, a leaked IP address. The provider offers no
idempotency keys and no transactions, so this package converges instead:
issue the mutating call, and when its outcome is ambiguous, probe actual
remote state, compare it with the caller's intent, compensate, and return
one canonical result.

Three independent protocols share that shape:

  - CreateMachine: the backend answers a name collision with 409 and embeds
    the existing machine's id in the error message; the id is extracted by
    an exactly anchored parser and returned as the outcome.
  - EnsureIP: the allocation endpoint allocates unconditionally, so the
    caller supplies the set of addresses it already knew about from its own
    durable state; after allocating, everything outside that set plus the
    new address is released as a leftover of an earlier attempt.
  - EnsureApp: a 422 on create is followed by a by-name probe; same org
    means an earlier retry already succeeded, a different org is a hard
    error, and a failed probe defers to the original create failure.

The Reconciler is stateless between calls and takes no locks. If a call is
aborted at any point, nothing is corrupted: the next retry, supplied with
up-to-date caller state, observes whatever the aborted attempt left behind
and converges on it. Do not add local caching of remote state; correctness
across process restarts depends on every decision reading fresh.
*/
package reconcile
