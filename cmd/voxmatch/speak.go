package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"voxmatch/internal/ai"
	cfgpkg "voxmatch/internal/config"
)

type speaker interface {
	Speak(ctx context.Context, text string, w io.Writer) error
}

type openaiSpeaker struct {
	client *ai.Client
	model  string
	voice  string
	speed  float64
}

func (s *openaiSpeaker) Speak(ctx context.Context, text string, w io.Writer) error {
	audio, err := s.client.Speech(ctx, ai.SpeechRequest{
		Model: s.model,
		Voice: s.voice,
		Text:  text,
		Speed: s.speed,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(audio)
	return err
}

type elevenLabsSpeaker struct {
	client *ai.ElevenLabsClient
	model  string
	voice  string
}

func (s *elevenLabsSpeaker) Speak(ctx context.Context, text string, w io.Writer) error {
	return s.client.TTS(ctx, s.model, s.voice, text, w)
}

var newSpeaker = func(cfg cfgpkg.Config) (speaker, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.TTSProvider))
	if provider == "" {
		provider = "openai"
	}
	switch provider {
	case "openai":
		client, err := ai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return &openaiSpeaker{client: client, model: cfg.TTSModel, voice: cfg.Voice, speed: cfg.Speed}, nil
	case "elevenlabs":
		client, err := ai.NewElevenLabs(cfg.ElevenLabsAPIKey)
		if err != nil {
			return nil, err
		}
		return &elevenLabsSpeaker{client: client, model: cfg.TTSModel, voice: cfg.Voice}, nil
	default:
		return nil, fmt.Errorf("unsupported tts provider: %s", cfg.TTSProvider)
	}
}

// voxmatch speak
func cmdSpeak(args []string) error {
	var cf commonFlags
	var voiceName, provider stringFlag
	var speed floatFlag
	fs := flag.NewFlagSet("speak", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	text := fs.String("text", "", "Text to synthesize")
	in := fs.String("in", "", "Read text from this file instead of --text")
	out := fs.String("out", "reply.mp3", "Output audio file")
	fs.Var(&voiceName, "voice", "TTS voice")
	fs.Var(&provider, "provider", "TTS provider: openai, elevenlabs")
	fs.Var(&speed, "speed", "Speech speed multiplier")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if *text == "" && *in == "" {
		return errors.New("--text or --in is required")
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
	if provider.set {
		flagOv.TTSProvider = &provider.v
	}
	if speed.set {
		flagOv.Speed = &speed.v
	}
	cfg := cfgpkg.Merge(fileCfg, envOv, flagOv, secrets)

	if err := cfgpkg.ValidateForSpeak(cfg); err != nil {
		return err
	}

	input := *text
	if input == "" {
		b, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		input = string(b)
	}

	synth, err := newSpeaker(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close audio output", "err", cerr)
		}
	}()
	if err := synth.Speak(context.Background(), input, f); err != nil {
		return err
	}

	slog.Info(
		"speech generated",
		"voice", cfg.Voice,
		"ttsModel", cfg.TTSModel,
		"ttsProvider", cfg.TTSProvider,
		"path", *out,
	)
	return nil
}
