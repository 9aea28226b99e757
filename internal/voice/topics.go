package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"voxmatch/internal/ai"
)

// topicMaxTokens caps the extraction reply length.
const topicMaxTokens = 500

// topicTemperature keeps extraction near-deterministic.
const topicTemperature = 0.3

// ExtractTopicsAndHashtags analyzes text and returns topics, hashtags, and
// classification labels for the matching algorithm. Never returns an error:
// an unparseable reply substitutes the parse fallback (raw reply preserved),
// a failed request substitutes the lower-confidence error fallback.
func (s *Service) ExtractTopicsAndHashtags(ctx context.Context, text string, callerContext map[string]any, language string) TopicExtractionResult {
	var contextJSON string
	if len(callerContext) > 0 {
		if encoded, err := json.MarshalIndent(callerContext, "", "  "); err == nil {
			contextJSON = string(encoded)
		}
	}

	reply, err := s.backend.Complete(ctx, ai.CompletionRequest{
		Model:       s.params.TextModel,
		System:      buildTopicPrompt(language, contextJSON),
		Prompt:      fmt.Sprintf("Please analyze this text and extract topics/hashtags: %s", text),
		Temperature: topicTemperature,
		MaxTokens:   topicMaxTokens,
	})
	if err != nil {
		slog.Error("topic extraction call failed", "err", err)
		return topicErrorFallback(err.Error())
	}

	result, parsed := parseTopicReply(reply)
	if !parsed {
		slog.Warn("topic reply was not valid JSON, using fallback")
		return result
	}
	slog.Info("topics extracted", "topics", result.MainTopics)
	return result
}

// ProcessVoiceForHashtags is the voice-to-hashtag pipeline: transcription,
// then topic extraction over the transcript. An empty or whitespace-only
// transcript short-circuits before the extraction stage. This is a top-level
// convenience method: any stage failure is caught and returned as an
// empty-result/error shape.
func (s *Service) ProcessVoiceForHashtags(ctx context.Context, audio []byte, format, language string) VoiceHashtagResult {
	stt, err := s.SpeechToText(ctx, audio, language)
	if err != nil {
		slog.Error("voice hashtag pipeline failed", "stage", "stt", "err", err)
		return VoiceHashtagResult{
			MainTopics: []string{},
			Hashtags:   []string{},
			Error:      err.Error(),
		}
	}

	if strings.TrimSpace(stt.Text) == "" {
		return VoiceHashtagResult{
			MainTopics: []string{},
			Hashtags:   []string{},
			Error:      "No speech detected in audio",
		}
	}

	topics := s.ExtractTopicsAndHashtags(ctx, stt.Text, map[string]any{
		"source":       "voice_input",
		"language":     language,
		"audio_format": format,
	}, language)
	if topics.Error != "" {
		slog.Error("voice hashtag pipeline failed", "stage", "topics", "err", topics.Error)
		return VoiceHashtagResult{
			MainTopics: []string{},
			Hashtags:   []string{},
			Error:      topics.Error,
		}
	}

	summary := topics.Summary
	if summary == "" {
		summary = truncate(stt.Text, 100)
	}
	result := VoiceHashtagResult{
		Transcription:     stt.Text,
		Language:          stt.Language,
		Duration:          stt.Duration,
		Confidence:        stt.Confidence,
		MainTopics:        topics.MainTopics,
		Hashtags:          topics.Hashtags,
		Category:          topics.Category,
		Sentiment:         topics.Sentiment,
		ConversationStyle: topics.ConversationStyle,
		Summary:           summary,
	}
	slog.Info("voice hashtag pipeline completed", "hashtags", len(result.Hashtags))
	return result
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
