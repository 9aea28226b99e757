package voice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voxmatch/internal/ai"
)

// ProcessVoiceForMatching runs one unified multimodal call: understand the
// user's voice, extract topics and hashtags for matching, and speak a
// confirmation back. Never returns an error to the caller; every failure path
// yields a fully populated result with Error set.
func (s *Service) ProcessVoiceForMatching(ctx context.Context, audio AudioPayload, format, language string) VoiceMatchResult {
	reply, err := s.backend.VoiceChat(ctx, ai.VoiceChatRequest{
		Model:       s.params.AudioModel,
		Voice:       s.params.MatchVoice,
		AudioFormat: "wav",
		System:      buildMatchingPrompt(language),
		AudioB64:    audio.Encode(),
		InputFormat: format,
	})
	if err != nil {
		slog.Error("voice matching call failed", "err", err)
		return VoiceMatchResult{
			UnderstoodText:    "Sorry, I didn't understand what you said",
			ExtractedTopics:   []string{"General topic"},
			GeneratedHashtags: []string{"#general"},
			MatchIntent:       "General chat",
			TextResponse:      fmt.Sprintf("Error processing voice input: %v", err),
			ProcessedAt:       time.Now().UTC(),
			Error:             err.Error(),
		}
	}

	slog.Debug("voice matching usage",
		"inputTokens", reply.Usage.InputTokens,
		"outputTokens", reply.Usage.OutputTokens,
		"audioTokens", reply.Usage.AudioTokens,
	)
	fields, parsed := parseMatchReply(reply.Text)
	if !parsed {
		slog.Warn("matching reply carried no parseable JSON, using fallback")
	}
	result := VoiceMatchResult{
		UnderstoodText:    fields.UnderstoodText,
		ExtractedTopics:   fields.ExtractedTopics,
		GeneratedHashtags: fields.GeneratedHashtags,
		MatchIntent:       fields.MatchIntent,
		AudioResponse:     reply.AudioB64,
		TextResponse:      reply.Text,
		AudioTranscript:   reply.AudioTranscript,
		ProcessedAt:       time.Now().UTC(),
	}
	slog.Info("voice matching processed", "topics", result.ExtractedTopics, "hasAudio", result.AudioResponse != "")
	return result
}
