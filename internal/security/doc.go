// Package security validates filesystem paths before any I/O touches them.
//
// Validation is layered: a cheap traversal pre-check on the raw string, a
// character policy, and then canonicalization with optional base-directory
// containment. Policy (hidden files, depth limits, deny patterns, symlink
// handling) lives in Config; the free functions implement the mechanics.
//
// Failures are always reported as *types.SecurityError (or a wrapped I/O
// error), never silently corrected. Nothing in this package mutates the
// filesystem.
package security
