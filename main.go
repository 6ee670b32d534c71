package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"

	"nescore/ines"
)

const version = "0.1.0"

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case versionMode:
		fmt.Println("nescore", version)
	case romInfosMode:
		rom, err := ines.Open(cfg.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		rom.PrintInfos(os.Stdout)
	case runMode:
		checkf(runWithProfile(cfg), "emulation failed")
	}
}

// runWithProfile runs the emulation, under the CPU profiler if requested.
// The profile is written before returning, error or not.
func runWithProfile(cfg CLI) error {
	if cfg.CPUProfile != "" {
		defer profile.Start(
			profile.CPUProfile,
			profile.ProfilePath(cfg.CPUProfile),
			profile.NoShutdownHook,
			profile.Quiet,
		).Stop()
	}
	return runMain(cfg.Run)
}
