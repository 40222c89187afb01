// Package annotation declares how a stored value is shared between
// goroutines.
//
// SharedImmutable and ThreadLocal are zero-sized markers. Embed one as a blank
// field in the struct that owns the value:
//
//	type routeTable struct {
//		_      annotation.SharedImmutable
//		routes map[string]string
//	}
//
// Markers add no bytes to the struct and perform no checks. They record a
// discipline for readers, reviewers and linters; breaking it is a data race
// that nothing in this package detects.
//
// Frozen and Local are the enforcing counterparts, for code that wants the
// discipline checked at run time.
package annotation
