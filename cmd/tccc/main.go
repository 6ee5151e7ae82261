// cmd/tccc/main.go
package main

import (
	tccc "github.com/mwiater/tccc/internal/commands"
)

// Build metadata injected with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = tccc.SetVersionInfo
	executeCmd     = tccc.Execute
)

// main starts the tccc CLI application by delegating to the
// cobra root command defined in the commands package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
