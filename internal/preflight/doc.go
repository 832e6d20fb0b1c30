// Package preflight verifies filesystem prerequisites before a mutating
// sorting pass: the source root must exist and be readable, and the
// destination root (or its nearest existing ancestor) must be writable.
// Failures surface before any file is touched.
package preflight
