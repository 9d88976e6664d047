// Package pull synchronizes every discovered repository with its upstream
// branch, stashing local changes first and reporting the outcome of each
// repository individually.
package pull
