package ai

import (
	"context"
	"io"
)

// TextClient generates text from a text-only chat model.
type TextClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// VoiceChatClient runs one multimodal chat turn returning text and audio.
type VoiceChatClient interface {
	VoiceChat(ctx context.Context, req VoiceChatRequest) (VoiceChatReply, error)
}

// TranscriptionClient converts audio to text with word-level timing.
type TranscriptionClient interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (Transcript, error)
}

// SpeechClient synthesizes speech audio and returns the raw bytes.
type SpeechClient interface {
	Speech(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// TTSClient synthesizes speech audio from text into a writer.
type TTSClient interface {
	TTS(ctx context.Context, model, voice, text string, w io.Writer) error
}
