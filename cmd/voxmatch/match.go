package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"log/slog"
	"os"

	cfgpkg "voxmatch/internal/config"
	"voxmatch/internal/voice"
)

// voxmatch match
func cmdMatch(args []string) error {
	var cf commonFlags
	var voiceName, language stringFlag
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	in := fs.String("in", "", "Voice clip to process (required)")
	format := fs.String("format", "wav", "Input audio format (wav, mp3)")
	out := fs.String("out", "", "Write the spoken reply to this file")
	fs.Var(&voiceName, "voice", "Reply voice")
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
	if voiceName.set {
		flagOv.Voice = &voiceName.v
	}
	if language.set {
		flagOv.Language = &language.v
	}
	cfg := cfgpkg.Merge(fileCfg, envOv, flagOv, secrets)

	if err := cfgpkg.ValidateForVoice(cfg); err != nil {
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

	res := svc.ProcessVoiceForMatching(context.Background(), voice.AudioPayload{Raw: clip}, *format, cfg.Language)
	if err := writeJSON(os.Stdout, res); err != nil {
		return err
	}
	if res.Error != "" {
		slog.Warn("voice matching degraded", "err", res.Error)
	}

	if *out != "" && res.AudioResponse != "" {
		reply, err := base64.StdEncoding.DecodeString(res.AudioResponse)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, reply, 0o644); err != nil {
			return err
		}
		slog.Info("reply audio written", "path", *out, "bytes", len(reply))
	}

	slog.Info(
		"voice matching completed",
		"in", *in,
		"topics", len(res.ExtractedTopics),
		"hashtags", len(res.GeneratedHashtags),
		"intent", res.MatchIntent,
	)
	return nil
}
