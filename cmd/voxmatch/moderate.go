package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	cfgpkg "voxmatch/internal/config"
	"voxmatch/internal/voice"
)

// voxmatch moderate
func cmdModerate(args []string) error {
	var cf commonFlags
	var voiceName stringFlag
	fs := flag.NewFlagSet("moderate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	text := fs.String("text", "", "Moderation instruction or latest message text")
	in := fs.String("in", "", "Voice clip with the latest message (wav)")
	mode := fs.String("mode", "active_host", "Moderation mode: active_host, secretary, fact_checker")
	participants := fs.String("participants", "", "Comma-separated participant names")
	contextPath := fs.String("context", "", "JSON file with prior conversation turns")
	out := fs.String("out", "", "Write the spoken reply to this file")
	fs.Var(&voiceName, "voice", "Moderator reply voice")

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
	var flagOv cfgpkg.Overrides
	if voiceName.set {
		flagOv.ModeratorVoice = &voiceName.v
	}
	cfg := cfgpkg.Merge(fileCfg, envOv, flagOv, secrets)

	if err := cfgpkg.ValidateForVoice(cfg); err != nil {
		return err
	}

	svc, err := newVoiceService(cfg)
	if err != nil {
		return err
	}

	input := voice.ModerationInput{
		Text:         *text,
		Mode:         *mode,
		Participants: splitComma(*participants),
	}
	if *in != "" {
		clip, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		input.Audio = voice.AudioPayload{Raw: clip}
	}
	if *contextPath != "" {
		b, err := os.ReadFile(*contextPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &input.Context); err != nil {
			return fmt.Errorf("parse context file: %w", err)
		}
	}

	res := svc.ModerateRoomConversation(context.Background(), input)
	if err := writeJSON(os.Stdout, res); err != nil {
		return err
	}
	if res.Error != "" {
		slog.Warn("moderation degraded", "err", res.Error)
	}

	if *out != "" && res.Reply.Audio != "" {
		reply, err := base64.StdEncoding.DecodeString(res.Reply.Audio)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, reply, 0o644); err != nil {
			return err
		}
		slog.Info("reply audio written", "path", *out, "bytes", len(reply))
	}

	slog.Info("moderation completed", "mode", res.Mode, "suggestions", len(res.Suggestions))
	return nil
}
