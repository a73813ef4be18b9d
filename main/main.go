package main

import (
	"flag"
	"log"

	"github.com/TheFellow/smokesim/pkg/config"
	"github.com/TheFellow/smokesim/pkg/settings"
)

const appName = "smokesim"

func loadConfig() (*config.Config, error) {
	if *configFlag == "" {
		return config.Default(), nil
	}
	return config.Load(*configFlag)
}

func openSettings() *settings.Manager {
	if *noSettingsFlag {
		return settings.NewManager(nil)
	}
	prefs, err := settings.Open(appName)
	if err != nil {
		log.Printf("[settings] %v (settings will not be saved)", err)
		return settings.NewManager(nil)
	}
	return prefs
}

func run() error {
	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return err
		}
		defer stop()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSet("advect-smoke") {
		cfg.Step.AdvectSmoke = *advectSmokeFlag
	}

	sim, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	if *headlessFlag {
		return runHeadless(sim, *stepsFlag)
	}

	prefs := openSettings()
	// An explicit flag or scenario file beats the remembered toggle.
	if flagSet("advect-smoke") || *configFlag != "" {
		prefs.SetAdvectSmoke(cfg.Step.AdvectSmoke)
	}
	sim.setAdvectSmoke(prefs.Get().AdvectSmoke)
	if *scaleFlag > 0 {
		prefs.SetScale(*scaleFlag)
	}
	defer func() {
		if err := prefs.Save(); err != nil {
			log.Printf("[settings] %v", err)
		}
	}()

	if *termFlag {
		return runTerminal(sim, prefs)
	}
	return runWindow(sim, prefs)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
