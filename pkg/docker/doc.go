/*
Package docker provides typed bindings over the local container runtime's
command line interface: containers, networks, and volumes.

Every operation shells out to the docker binary through a small Runner
interface, so tests can script CLI behavior without a daemon. Create-style
operations are made idempotent by checking existence first (or, for
RunContainer, by recovering from the name-conflict error), and
remove-style operations treat an already-absent resource as success, so
the bindings are safe to retry under at-least-once execution the same way
the Fly bindings are.
*/
package docker
