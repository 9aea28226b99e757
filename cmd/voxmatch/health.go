package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	cfgpkg "voxmatch/internal/config"
)

// voxmatch health
func cmdHealth(args []string) error {
	var cf commonFlags
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	fileCfg, err := cfgpkg.LoadFile(cf.config)
	if err != nil {
		return err
	}
	envOv, secrets := cfgpkg.FromEnv()
	cfg := cfgpkg.Merge(fileCfg, envOv, cfgpkg.Overrides{}, secrets)

	if err := cfgpkg.ValidateForVoice(cfg); err != nil {
		return err
	}

	svc, err := newVoiceService(cfg)
	if err != nil {
		return err
	}

	status := svc.HealthCheck(context.Background())
	if err := writeJSON(os.Stdout, status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return fmt.Errorf("service unhealthy: %s", status.Error)
	}
	return nil
}
