// Package artifact persists rendered course artifacts to a flat directory tree, one
// directory per course, with idempotent and verified writes.
package artifact
