package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "wavepeek",
		Short:   "Render waveform previews of audio files",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			RenderCmd(),
			InfoCmd(),
			WatchCmd(),
			ToneCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-(no build info)"
	}
	if bi.Main.Version == "" {
		return "unknown-(no version)"
	}
	return bi.Main.Version
}
