//go:build debug

package mcts

import "log"

// logf writes search diagnostics to the standard logger. Only compiled in
// with -tags debug; see log_release.go for the no-op build.
func logf(format string, args ...interface{}) {
	log.Printf("mcts: "+format, args...)
}
