// Package catalog persists the list of discovered remote URLs as a JSON
// document and reads it back for batch cloning.
package catalog
