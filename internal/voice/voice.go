// Package voice is the orchestration layer over the remote AI provider for
// the matching app: voice understanding, topic/hashtag extraction, spoken
// replies, and room moderation. Each operation is a stateless one-shot call;
// failure policy is per operation (see each method).
package voice

import (
	"context"

	"voxmatch/internal/ai"
)

// Backend is the remote capability surface the service needs. *ai.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	VoiceChat(ctx context.Context, req ai.VoiceChatRequest) (ai.VoiceChatReply, error)
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
	Transcribe(ctx context.Context, req ai.TranscribeRequest) (ai.Transcript, error)
	Speech(ctx context.Context, req ai.SpeechRequest) ([]byte, error)
}

// Params selects the models and voices the service calls with.
// Zero fields fall back to the defaults below.
type Params struct {
	AudioModel     string // multimodal chat model
	TextModel      string // text-only chat model
	STTModel       string // transcription model
	TTSModel       string // synthesis model for TextToSpeech
	ProbeModel     string // synthesis model for HealthCheck
	MatchVoice     string // reply voice for voice matching
	ModeratorVoice string // reply voice for room moderation
}

const (
	defaultAudioModel     = "gpt-4o-audio-preview"
	defaultTextModel      = "gpt-4"
	defaultSTTModel       = "whisper-1"
	defaultTTSModel       = "tts-1-hd"
	defaultProbeModel     = "tts-1"
	defaultMatchVoice     = "alloy"
	defaultModeratorVoice = "nova"
)

// defaultTranscriptionConfidence substitutes for a real confidence score;
// the transcription service does not report one.
const defaultTranscriptionConfidence = 0.95

// Service exposes the media operations over one shared client handle.
// It holds no other state and is safe for concurrent use.
type Service struct {
	backend Backend
	params  Params
}

// NewService constructs the media service around a backend client.
func NewService(backend Backend, params Params) *Service {
	if params.AudioModel == "" {
		params.AudioModel = defaultAudioModel
	}
	if params.TextModel == "" {
		params.TextModel = defaultTextModel
	}
	if params.STTModel == "" {
		params.STTModel = defaultSTTModel
	}
	if params.TTSModel == "" {
		params.TTSModel = defaultTTSModel
	}
	if params.ProbeModel == "" {
		params.ProbeModel = defaultProbeModel
	}
	if params.MatchVoice == "" {
		params.MatchVoice = defaultMatchVoice
	}
	if params.ModeratorVoice == "" {
		params.ModeratorVoice = defaultModeratorVoice
	}
	return &Service{backend: backend, params: params}
}
