// Package ui renders git invocation lifecycle events for human-readable console logging.
package ui
