package voice

import (
	"encoding/base64"
	"errors"
	"time"
)

// AudioPayload carries caller audio either as raw bytes or as an already
// base64-encoded string. Exactly one field should be set.
type AudioPayload struct {
	Raw    []byte
	Base64 string
}

// Empty reports whether no audio was supplied.
func (p AudioPayload) Empty() bool {
	return len(p.Raw) == 0 && p.Base64 == ""
}

// Encode returns the audio as base64 for embedding in a chat request.
func (p AudioPayload) Encode() string {
	if p.Base64 != "" {
		return p.Base64
	}
	return base64.StdEncoding.EncodeToString(p.Raw)
}

// Bytes returns the raw audio, decoding the base64 form if needed.
func (p AudioPayload) Bytes() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	if p.Base64 == "" {
		return nil, errors.New("no audio data")
	}
	return base64.StdEncoding.DecodeString(p.Base64)
}

// VoiceMatchResult is the outcome of one voice-for-matching call. Every field
// is populated even on failure; Error is non-empty on the failure paths.
type VoiceMatchResult struct {
	UnderstoodText    string    `json:"understood_text"`
	ExtractedTopics   []string  `json:"extracted_topics"`
	GeneratedHashtags []string  `json:"generated_hashtags"`
	MatchIntent       string    `json:"match_intent"`
	AudioResponse     string    `json:"audio_response,omitempty"` // base64
	TextResponse      string    `json:"text_response"`
	AudioTranscript   string    `json:"audio_transcript,omitempty"`
	ProcessedAt       time.Time `json:"processing_time"`
	Error             string    `json:"error,omitempty"`
}

// AIReply is the moderator's answer: text plus optional synthesized audio.
type AIReply struct {
	Text            string `json:"text"`
	Audio           string `json:"audio,omitempty"` // base64
	AudioTranscript string `json:"audio_transcript,omitempty"`
}

// ModerationResult is the outcome of one room-moderation call.
type ModerationResult struct {
	Reply        AIReply   `json:"ai_response"`
	Mode         string    `json:"moderation_type"`
	Suggestions  []string  `json:"suggestions"`
	Timestamp    time.Time `json:"timestamp"`
	Participants []string  `json:"participants,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// ModerationInput collects the optional inputs for one moderation turn.
type ModerationInput struct {
	Audio        AudioPayload
	Text         string
	Context      []Turn // prior conversation turns, oldest first
	Participants []string
	Mode         string // active_host, secretary, fact_checker
}

// Turn is one prior conversation message.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// WordSpan is one word-level timestamp span from transcription.
type WordSpan struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptionResult is the outcome of one speech-to-text call. Confidence
// is always defaultTranscriptionConfidence; the service reports none.
type TranscriptionResult struct {
	Text       string     `json:"text"`
	Language   string     `json:"language"`
	Duration   float64    `json:"duration"`
	Confidence float64    `json:"confidence"`
	Words      []WordSpan `json:"words"`
}

// TopicExtractionResult is the outcome of one topic extraction call.
// RawResponse is set only when the model reply was not valid JSON.
type TopicExtractionResult struct {
	MainTopics        []string `json:"main_topics"`
	Hashtags          []string `json:"hashtags"`
	Category          string   `json:"category"`
	Sentiment         string   `json:"sentiment"`
	ConversationStyle string   `json:"conversation_style"`
	Confidence        float64  `json:"confidence"`
	Summary           string   `json:"summary"`
	RawResponse       string   `json:"raw_response,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// VoiceHashtagResult flattens a transcription and a topic extraction into
// one record for the matching pipeline.
type VoiceHashtagResult struct {
	Transcription     string   `json:"transcription"`
	Language          string   `json:"language,omitempty"`
	Duration          float64  `json:"duration,omitempty"`
	Confidence        float64  `json:"confidence,omitempty"`
	MainTopics        []string `json:"main_topics"`
	Hashtags          []string `json:"hashtags"`
	Category          string   `json:"category,omitempty"`
	Sentiment         string   `json:"sentiment,omitempty"`
	ConversationStyle string   `json:"conversation_style,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// HealthStatus reports the outcome of a connectivity probe.
type HealthStatus struct {
	Status    string    `json:"status"` // healthy or unhealthy
	Service   string    `json:"service"`
	Model     string    `json:"model,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"timestamp"`
}
