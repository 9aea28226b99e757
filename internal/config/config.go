package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds resolved configuration values after merging file, env, and flags.
type Config struct {
	Voice          string  `json:"voice,omitempty"`
	ModeratorVoice string  `json:"moderatorVoice,omitempty"`
	AudioModel     string  `json:"audioModel,omitempty"`
	TextModel      string  `json:"textModel,omitempty"`
	STTModel       string  `json:"sttModel,omitempty"`
	TTSModel       string  `json:"ttsModel,omitempty"`
	TTSProvider    string  `json:"ttsProvider,omitempty"`
	Language       string  `json:"language,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	S3Bucket       string  `json:"s3Bucket,omitempty"`
	S3Prefix       string  `json:"s3Prefix,omitempty"`
	Region         string  `json:"region,omitempty"`
	Debug          bool    `json:"debug,omitempty"`
	Overwrite      bool    `json:"overwrite,omitempty"`

	// Not persisted to file; sourced from env only.
	OpenAIAPIKey     string `json:"-"`
	OpenAIBaseURL    string `json:"-"`
	ElevenLabsAPIKey string `json:"-"`
}

// Overrides represents optional overrides from env or flags.
// Only non-nil pointers are applied during merge.
type Overrides struct {
	Voice          *string
	ModeratorVoice *string
	AudioModel     *string
	TextModel      *string
	STTModel       *string
	TTSModel       *string
	TTSProvider    *string
	Language       *string
	Speed          *float64
	S3Bucket       *string
	S3Prefix       *string
	Region         *string
	Debug          *bool
	Overwrite      *bool
}

// Secrets are credential values sourced from the environment only.
type Secrets struct {
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	ElevenLabsAPIKey string
}

func Default() Config {
	return Config{
		Voice:          "alloy",
		ModeratorVoice: "nova",
		AudioModel:     "gpt-4o-audio-preview",
		TextModel:      "gpt-4",
		STTModel:       "whisper-1",
		TTSModel:       "tts-1-hd",
		TTSProvider:    "openai",
		Language:       "en-US",
		Speed:          1.0,
		S3Prefix:       "voxmatch",
	}
}

// LoadFile reads a JSON config. If file not found, returns defaults and no error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv reads env vars and returns overrides plus the credentials.
func FromEnv() (Overrides, Secrets) {
	var ov Overrides

	if v, ok := os.LookupEnv("VOXMATCH_VOICE"); ok {
		ov.Voice = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_MODERATOR_VOICE"); ok {
		ov.ModeratorVoice = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_AUDIO_MODEL"); ok {
		ov.AudioModel = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_TEXT_MODEL"); ok {
		ov.TextModel = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_STT_MODEL"); ok {
		ov.STTModel = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_TTS_MODEL"); ok {
		ov.TTSModel = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_TTS_PROVIDER"); ok {
		ov.TTSProvider = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_LANGUAGE"); ok {
		ov.Language = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_SPEED"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			ov.Speed = &[]float64{f}[0]
		}
	}
	if v, ok := os.LookupEnv("AWS_S3_BUCKET"); ok {
		ov.S3Bucket = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("AWS_S3_PREFIX"); ok {
		ov.S3Prefix = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("AWS_REGION"); ok {
		ov.Region = &[]string{v}[0]
	}
	if v, ok := os.LookupEnv("VOXMATCH_DEBUG"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Debug = &[]bool{b}[0]
		}
	}
	if v, ok := os.LookupEnv("VOXMATCH_OVERWRITE"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Overwrite = &[]bool{b}[0]
		}
	}
	secrets := Secrets{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
	}
	return ov, secrets
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return false, fmt.Errorf("empty bool")
	}
	if s == "1" || s == "t" || s == "true" || s == "y" || s == "yes" || s == "on" {
		return true, nil
	}
	if s == "0" || s == "f" || s == "false" || s == "n" || s == "no" || s == "off" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Merge applies overrides in order: file -> env -> flags.
func Merge(fileCfg Config, env Overrides, flags Overrides, secrets Secrets) Config {
	cfg := fileCfg

	apply := func(ov Overrides) {
		if ov.Voice != nil {
			cfg.Voice = *ov.Voice
		}
		if ov.ModeratorVoice != nil {
			cfg.ModeratorVoice = *ov.ModeratorVoice
		}
		if ov.AudioModel != nil {
			cfg.AudioModel = *ov.AudioModel
		}
		if ov.TextModel != nil {
			cfg.TextModel = *ov.TextModel
		}
		if ov.STTModel != nil {
			cfg.STTModel = *ov.STTModel
		}
		if ov.TTSModel != nil {
			cfg.TTSModel = *ov.TTSModel
		}
		if ov.TTSProvider != nil {
			cfg.TTSProvider = *ov.TTSProvider
		}
		if ov.Language != nil {
			cfg.Language = *ov.Language
		}
		if ov.Speed != nil {
			cfg.Speed = *ov.Speed
		}
		if ov.S3Bucket != nil {
			cfg.S3Bucket = *ov.S3Bucket
		}
		if ov.S3Prefix != nil {
			cfg.S3Prefix = *ov.S3Prefix
		}
		if ov.Region != nil {
			cfg.Region = *ov.Region
		}
		if ov.Debug != nil {
			cfg.Debug = *ov.Debug
		}
		if ov.Overwrite != nil {
			cfg.Overwrite = *ov.Overwrite
		}
	}

	apply(env)
	apply(flags)

	cfg.OpenAIAPIKey = secrets.OpenAIAPIKey
	cfg.OpenAIBaseURL = secrets.OpenAIBaseURL
	cfg.ElevenLabsAPIKey = secrets.ElevenLabsAPIKey
	return cfg
}

// Validation helpers
func ValidateForVoice(cfg Config) error {
	if cfg.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required for voice processing")
	}
	if cfg.AudioModel == "" {
		return errors.New("audio model is required")
	}
	return nil
}

func ValidateForTopics(cfg Config) error {
	if cfg.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required for topic extraction")
	}
	if cfg.TextModel == "" {
		return errors.New("text model is required")
	}
	return nil
}

func ValidateForTranscribe(cfg Config) error {
	if cfg.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required for transcription")
	}
	if cfg.STTModel == "" {
		return errors.New("stt model is required")
	}
	return nil
}

func ValidateForSpeak(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.TTSProvider)) {
	case "", "openai":
		if cfg.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for speech synthesis")
		}
	case "elevenlabs":
		if cfg.ElevenLabsAPIKey == "" {
			return errors.New("ELEVENLABS_API_KEY is required for speech synthesis")
		}
	default:
		return fmt.Errorf("unsupported tts provider: %s", cfg.TTSProvider)
	}
	if cfg.TTSModel == "" {
		return errors.New("tts model is required")
	}
	if cfg.Voice == "" {
		return errors.New("voice is required")
	}
	return nil
}

func ValidateForArchive(cfg Config) error {
	if cfg.S3Bucket == "" {
		return errors.New("S3 bucket is required for archive")
	}
	if cfg.Region == "" {
		return errors.New("AWS region is required for archive")
	}
	return nil
}
