package main

import (
	"runtime"

	"github.com/bnema/plugview/internal/cli/cmd"
	"github.com/bnema/plugview/internal/domain/build"

	// Backends register themselves; webkitgtk and webview compile to an
	// empty package without their build tag.
	_ "github.com/bnema/plugview/internal/infrastructure/headless"
	_ "github.com/bnema/plugview/internal/infrastructure/webkit"
	_ "github.com/bnema/plugview/internal/infrastructure/webview"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	enableCrashForensics()

	// Pass build info to CLI
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
