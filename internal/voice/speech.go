package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voxmatch/internal/ai"
)

// TextToSpeech synthesizes text with the high-quality tier and returns the
// raw audio bytes. Failures propagate: there is no meaningful fallback audio.
func (s *Service) TextToSpeech(ctx context.Context, text, voiceName string, speed float64) ([]byte, error) {
	audio, err := s.backend.Speech(ctx, ai.SpeechRequest{
		Model: s.params.TTSModel,
		Voice: voiceName,
		Text:  text,
		Speed: speed,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("tts generated", "voice", voiceName, "bytes", len(audio))
	return audio, nil
}

// SpeechToText transcribes audio with word-level timestamps. Failures
// propagate with context; other operations depend on observing them.
// The language tag is mapped to its primary subtag for the request
// ("en-US" -> "en"); the original tag is the detected-language default when
// the service omits one.
func (s *Service) SpeechToText(ctx context.Context, audio []byte, language string) (TranscriptionResult, error) {
	transcript, err := s.backend.Transcribe(ctx, ai.TranscribeRequest{
		Model:    s.params.STTModel,
		Audio:    audio,
		Language: primarySubtag(language),
	})
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("stt processing failed: %w", err)
	}

	detected := transcript.Language
	if detected == "" {
		detected = language
	}
	words := make([]WordSpan, 0, len(transcript.Words))
	for _, w := range transcript.Words {
		words = append(words, WordSpan{Word: w.Word, Start: w.Start, End: w.End})
	}
	slog.Info("stt completed", "language", detected, "duration", transcript.Duration, "words", len(words))
	return TranscriptionResult{
		Text:       transcript.Text,
		Language:   detected,
		Duration:   transcript.Duration,
		Confidence: defaultTranscriptionConfidence,
		Words:      words,
	}, nil
}

// HealthCheck probes connectivity with a minimal synthesis call. The speech
// endpoint is used because its parameter surface is simpler and less
// failure-prone than the multimodal one. Never fails hard.
func (s *Service) HealthCheck(ctx context.Context) HealthStatus {
	now := time.Now().UTC()
	_, err := s.backend.Speech(ctx, ai.SpeechRequest{
		Model: s.params.ProbeModel,
		Voice: s.params.MatchVoice,
		Text:  "Health check test",
	})
	if err != nil {
		slog.Error("health check failed", "err", err)
		return HealthStatus{
			Status:    "unhealthy",
			Service:   "openai_audio",
			Error:     err.Error(),
			CheckedAt: now,
		}
	}
	return HealthStatus{
		Status:    "healthy",
		Service:   "openai_tts",
		Model:     s.params.ProbeModel,
		CheckedAt: now,
	}
}

// primarySubtag reduces a two-part language tag to its primary subtag.
func primarySubtag(language string) string {
	if idx := strings.IndexByte(language, '-'); idx >= 0 {
		return language[:idx]
	}
	return language
}
