// Package scan discovers git repositories under directory roots and records
// their origin remote URLs into the persisted catalog.
package scan
