package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	cfgpkg "voxmatch/internal/config"
)

// voxmatch transcribe
func cmdTranscribe(args []string) error {
	var cf commonFlags
	var language stringFlag
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	in := fs.String("in", "", "Voice clip to transcribe (required)")
	fs.Var(&language, "language", "Caller language tag, e.g. en-US")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if *in == "" {
		return errors.New("--in is required")
	}

	fileCfg, err := cfgpkg.LoadFile(cf.config)
	if err != nil {
		return err
	}
	envOv, secrets := cfgpkg.FromEnv()
	var flagOv cfgpkg.Overrides
	if language.set {
		flagOv.Language = &language.v
	}
	cfg := cfgpkg.Merge(fileCfg, envOv, flagOv, secrets)

	if err := cfgpkg.ValidateForTranscribe(cfg); err != nil {
		return err
	}

	svc, err := newVoiceService(cfg)
	if err != nil {
		return err
	}

	clip, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	res, err := svc.SpeechToText(context.Background(), clip, cfg.Language)
	if err != nil {
		return err
	}
	if err := writeJSON(os.Stdout, res); err != nil {
		return err
	}
	slog.Info("transcription completed", "in", *in, "language", res.Language, "duration", res.Duration, "words", len(res.Words))
	return nil
}
