// Package directory resolves notification recipients to push delivery tokens.
//
// A miss (unknown user, or a user who never registered a device) is a normal
// outcome, not an error; the dispatch pipeline skips those deliveries without
// surfacing anything upward.
package directory
