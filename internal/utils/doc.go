// Package utils hosts shared infrastructure for the gitfleet CLI: the zap
// logger factory and the Viper-backed configuration loader.
package utils
