// Package ir provides the resolved intermediate representation of an ASDL
// schema.
//
// This package contains type definitions only, plus the canonical JSON
// encoding used for dumps and digests. All other internal packages import
// ir; ir imports nothing internal. Backends consume an *ir.Module and must
// never re-parse or re-resolve.
//
// Key design constraints:
//   - Declarations and types are closed sets (sealed interfaces), consumed
//     with exhaustive type switches
//   - A Module is immutable once the resolver returns it
//   - Field quantifiers are normalized: T? is Optional[T], T* is List[T]
//   - Tags are unique within a sum; shared variants carry one module-wide tag
package ir
