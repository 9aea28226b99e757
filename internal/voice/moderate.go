package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"voxmatch/internal/ai"
)

// contextWindow caps how many prior turns are forwarded to the moderator.
const contextWindow = 10

// moderationMaxTokens caps the moderator's reply length.
const moderationMaxTokens = 300

// ModerateRoomConversation runs one AI-moderator turn over optional voice
// and/or text input plus trailing conversation context. Never returns an
// error; a failure yields a minimal error-shaped result.
func (s *Service) ModerateRoomConversation(ctx context.Context, input ModerationInput) ModerationResult {
	history := input.Context
	if len(history) > contextWindow {
		history = history[len(history)-contextWindow:]
	}
	turns := make([]ai.Turn, 0, len(history))
	for _, turn := range history {
		turns = append(turns, ai.Turn{Role: turn.Role, Text: turn.Text})
	}

	req := ai.VoiceChatRequest{
		Model:       s.params.AudioModel,
		Voice:       s.params.ModeratorVoice,
		AudioFormat: "wav",
		System:      buildModerationPrompt(input.Mode, input.Participants),
		History:     turns,
		Text:        input.Text,
		MaxTokens:   moderationMaxTokens,
	}
	if !input.Audio.Empty() {
		req.AudioB64 = input.Audio.Encode()
		req.InputFormat = "wav"
	}
	if req.AudioB64 == "" && req.Text == "" {
		req.Text = defaultModerationInstruction
	}

	reply, err := s.backend.VoiceChat(ctx, req)
	if err != nil {
		slog.Error("room moderation call failed", "mode", input.Mode, "err", err)
		return ModerationResult{
			Reply: AIReply{Text: fmt.Sprintf("AI host encountered an issue: %v", err)},
			Mode:  input.Mode,
			Error: err.Error(),
		}
	}

	slog.Debug("room moderation usage",
		"inputTokens", reply.Usage.InputTokens,
		"outputTokens", reply.Usage.OutputTokens,
		"audioTokens", reply.Usage.AudioTokens,
	)
	return ModerationResult{
		Reply: AIReply{
			Text:            reply.Text,
			Audio:           reply.AudioB64,
			AudioTranscript: reply.AudioTranscript,
		},
		Mode:         input.Mode,
		Suggestions:  ExtractSuggestions(reply.Text),
		Timestamp:    time.Now().UTC(),
		Participants: input.Participants,
	}
}

// Suggestion tags derived from a moderator reply.
const (
	TagSuggestion = "suggestion"
	TagTopic      = "topic"
	TagFactCheck  = "fact_check"
)

// ExtractSuggestions derives coarse suggestion tags from a moderator reply by
// case-insensitive keyword presence. Pure and deterministic; tags are
// non-exclusive.
func ExtractSuggestions(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	if strings.Contains(lower, "suggest") {
		tags = append(tags, TagSuggestion)
	}
	if strings.Contains(lower, "topic") {
		tags = append(tags, TagTopic)
	}
	if strings.Contains(lower, "fact") || strings.Contains(lower, "info") {
		tags = append(tags, TagFactCheck)
	}
	return tags
}
