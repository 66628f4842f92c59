/*
Package activity provides a typed registry the host dispatches work through.

Each registered activity is a named handler taking a raw JSON input and
returning a serializable result. Invoke assigns every call a uuid, logs it
under a child logger, and records duration and outcome metrics. Handler
errors are part of the Result envelope as plain strings; the error return
of Invoke is reserved for dispatch failures.
*/
package activity
