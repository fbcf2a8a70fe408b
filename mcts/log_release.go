//go:build !debug

package mcts

// logf is a no-op in release builds; see log_debug.go.
func logf(format string, args ...interface{}) {}
