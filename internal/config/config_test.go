package config

import (
	"testing"
)

func TestMergePrecedence(t *testing.T) {
	file := Default()
	file.Voice = "file-voice"
	file.S3Bucket = "file-bucket"

	env := Overrides{}
	env.Voice = strPtr("env-voice")
	env.S3Bucket = strPtr("env-bucket")

	flags := Overrides{}
	flags.Voice = strPtr("flag-voice")

	cfg := Merge(file, env, flags, Secrets{OpenAIAPIKey: "sk-key"})
	if cfg.Voice != "flag-voice" {
		t.Fatalf("voice precedence wrong: %s", cfg.Voice)
	}
	if cfg.S3Bucket != "env-bucket" {
		t.Fatalf("bucket precedence wrong: %s", cfg.S3Bucket)
	}
	if cfg.OpenAIAPIKey != "sk-key" {
		t.Fatalf("apikey not set")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.AudioModel != "gpt-4o-audio-preview" {
		t.Fatalf("audio model default wrong: %s", cfg.AudioModel)
	}
	if cfg.ModeratorVoice != "nova" {
		t.Fatalf("moderator voice default wrong: %s", cfg.ModeratorVoice)
	}
	if cfg.Speed != 1.0 {
		t.Fatalf("speed default wrong: %v", cfg.Speed)
	}
}

func TestValidateVoiceRequiresAPIKey(t *testing.T) {
	cfg := Default()
	if err := ValidateForVoice(cfg); err == nil {
		t.Fatalf("expected error without OPENAI_API_KEY")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if err := ValidateForVoice(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSpeakChecksProviderKey(t *testing.T) {
	cfg := Default()
	cfg.TTSProvider = "elevenlabs"
	cfg.OpenAIAPIKey = "sk-test"
	if err := ValidateForSpeak(cfg); err == nil {
		t.Fatalf("expected error without ELEVENLABS_API_KEY")
	}
	cfg.ElevenLabsAPIKey = "el-test"
	if err := ValidateForSpeak(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.TTSProvider = "unknown"
	if err := ValidateForSpeak(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestValidateArchive(t *testing.T) {
	cfg := Default()
	if err := ValidateForArchive(cfg); err == nil {
		t.Fatalf("expected error without bucket")
	}
	cfg.S3Bucket = "clips"
	cfg.Region = "us-west-2"
	if err := ValidateForArchive(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VOXMATCH_VOICE", "env-voice")
	t.Setenv("VOXMATCH_SPEED", "1.5")
	t.Setenv("VOXMATCH_DEBUG", "1")
	t.Setenv("OPENAI_API_KEY", "sk-xyz")
	t.Setenv("ELEVENLABS_API_KEY", "el-xyz")
	ov, secrets := FromEnv()
	if ov.Voice == nil || *ov.Voice != "env-voice" {
		t.Fatalf("voice not read from env")
	}
	if ov.Speed == nil || *ov.Speed != 1.5 {
		t.Fatalf("speed not parsed")
	}
	if ov.Debug == nil || *ov.Debug != true {
		t.Fatalf("debug not parsed as true")
	}
	if secrets.OpenAIAPIKey != "sk-xyz" {
		t.Fatalf("apikey not read from env")
	}
	if secrets.ElevenLabsAPIKey != "el-xyz" {
		t.Fatalf("elevenlabs key not read from env")
	}
}

func strPtr(s string) *string { return &s }
