package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	cfgpkg "voxmatch/internal/config"
)

// voxmatch hashtags
func cmdHashtags(args []string) error {
	var cf commonFlags
	var language stringFlag
	fs := flag.NewFlagSet("hashtags", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	in := fs.String("in", "", "Voice clip to process")
	text := fs.String("text", "", "Extract from text instead of audio")
	format := fs.String("format", "wav", "Input audio format (wav, mp3)")
	fs.Var(&language, "language", "Caller language tag, e.g. en-US")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if *in == "" && *text == "" {
		return errors.New("--in or --text is required")
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

	if err := cfgpkg.ValidateForTopics(cfg); err != nil {
		return err
	}

	svc, err := newVoiceService(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if *text != "" {
		res := svc.ExtractTopicsAndHashtags(ctx, *text, nil, cfg.Language)
		if err := writeJSON(os.Stdout, res); err != nil {
			return err
		}
		if res.Error != "" {
			slog.Warn("topic extraction degraded", "err", res.Error)
		}
		return nil
	}

	clip, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	res := svc.ProcessVoiceForHashtags(ctx, clip, *format, cfg.Language)
	if err := writeJSON(os.Stdout, res); err != nil {
		return err
	}
	if res.Error != "" {
		slog.Warn("hashtag extraction degraded", "err", res.Error)
	}
	slog.Info("hashtag extraction completed", "in", *in, "topics", len(res.MainTopics), "hashtags", len(res.Hashtags))
	return nil
}
