// Package histgrep searches every revision of every discovered repository for
// a pattern, printing each match prefixed by the repository it came from.
package histgrep
