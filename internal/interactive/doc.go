// Package interactive implements the guided prompt flow: a banner, prompts
// for source, destination, and filters, a per-extension preview of what would
// move, and safety confirmations. It produces the same configuration shape
// the flag-based surface builds, or ErrCancelled when the user declines.
package interactive
