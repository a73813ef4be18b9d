package main

import "flag"

var (
	// configFlag names a YAML scenario; the built-in scene is used when empty.
	configFlag = flag.String("config", "", "YAML scenario file")

	termFlag     = flag.Bool("term", false, "render in the terminal instead of a window")
	headlessFlag = flag.Bool("headless", false, "run without a viewer and log stats per step")
	stepsFlag    = flag.Int("steps", 100, "number of steps in headless mode")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// scaleFlag overrides the saved window scale when positive.
	scaleFlag = flag.Int("scale", 0, "screen pixels per cell in the window viewer")

	advectSmokeFlag = flag.Bool("advect-smoke", false, "transport smoke through the flow")

	noSettingsFlag = flag.Bool("no-settings", false, "do not load or save viewer settings")
)

// flagSet reports whether name was given on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
