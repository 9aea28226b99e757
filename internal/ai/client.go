package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the official OpenAI SDK client and exposes the four remote
// capabilities the app needs: multimodal voice chat, text completion,
// transcription, and speech synthesis.
type Client struct {
	apiKey  string
	baseURL string
	sdk     openai.Client
}

// New constructs a new AI client. The apiKey is required.
// baseURL is optional (empty string uses the default API endpoint).
func New(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	sdk := openai.NewClient(opts...)
	return &Client{apiKey: apiKey, baseURL: baseURL, sdk: sdk}, nil
}

func (c *Client) APIKey() string  { return c.apiKey }
func (c *Client) BaseURL() string { return c.baseURL }

// Turn is one prior conversation message supplied as context.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// VoiceChatRequest describes one multimodal chat completion call.
// At least one of AudioB64 or Text must be set.
type VoiceChatRequest struct {
	Model       string
	Voice       string // output voice
	AudioFormat string // output audio format, e.g. "wav"
	System      string
	History     []Turn
	AudioB64    string // base64 input audio, optional
	InputFormat string // format of the input audio, e.g. "wav"
	Text        string // text input part, optional
	MaxTokens   int64  // zero means provider default
}

// VoiceChatReply carries the model's text and synthesized audio.
// Audio fields are empty when the model returned no audio part.
type VoiceChatReply struct {
	Text            string
	AudioB64        string
	AudioTranscript string
	Usage           TokenUsage
}

// VoiceChat calls the Chat Completions API with text+audio modalities.
func (c *Client) VoiceChat(ctx context.Context, req VoiceChatRequest) (VoiceChatReply, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	messages = append(messages, openai.SystemMessage(req.System))
	for _, turn := range req.History {
		if turn.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(turn.Text))
			continue
		}
		messages = append(messages, openai.UserMessage(turn.Text))
	}

	var parts []openai.ChatCompletionContentPartUnionParam
	if req.AudioB64 != "" {
		parts = append(parts, openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
			Data:   req.AudioB64,
			Format: req.InputFormat,
		}))
	}
	if req.Text != "" {
		parts = append(parts, openai.TextContentPart(req.Text))
	}
	if len(parts) == 0 {
		return VoiceChatReply{}, errors.New("voice chat requires an audio or text input part")
	}
	messages = append(messages, openai.UserMessage(parts))

	params := openai.ChatCompletionNewParams{
		Model:      openai.ChatModel(req.Model),
		Modalities: []string{"text", "audio"},
		Audio: openai.ChatCompletionAudioParam{
			Voice:  openai.ChatCompletionAudioParamVoice(req.Voice),
			Format: openai.ChatCompletionAudioParamFormat(req.AudioFormat),
		},
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	res, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return VoiceChatReply{}, err
	}
	if len(res.Choices) == 0 {
		return VoiceChatReply{}, errors.New("empty completion response")
	}
	msg := res.Choices[0].Message
	return VoiceChatReply{
		Text:            msg.Content,
		AudioB64:        msg.Audio.Data,
		AudioTranscript: msg.Audio.Transcript,
		Usage:           usageFromCompletion(res.Usage),
	}, nil
}

// CompletionRequest describes one text-only chat completion call.
// Zero Temperature/MaxTokens leave the provider defaults in place.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// Complete calls the Chat Completions API and returns the reply text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	res, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return res.Choices[0].Message.Content, nil
}

// TranscribeRequest describes one transcription call.
type TranscribeRequest struct {
	Model    string // defaults to whisper-1
	Audio    []byte
	Filename string // defaults to audio.mp3; the API infers format from it
	Language string // primary language subtag hint, optional
}

// Word is one word-level timestamp span.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the verbose transcription payload. Language, Duration, and
// Words are zero-valued when the service omits them.
type Transcript struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Words    []Word  `json:"words"`
}

// Transcribe calls the Audio Transcriptions API requesting verbose output
// with word-level timestamps.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (Transcript, error) {
	model := req.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	filename := req.Filename
	if filename == "" {
		filename = "audio.mp3"
	}
	params := openai.AudioTranscriptionNewParams{
		Model:                  openai.AudioModel(model),
		File:                   openai.File(bytes.NewReader(req.Audio), filename, "application/octet-stream"),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}
	if req.Language != "" {
		params.Language = openai.String(req.Language)
	}
	res, err := c.sdk.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return Transcript{}, err
	}
	// The SDK models only the basic response shape; the verbose_json fields
	// (language, duration, words) have to be decoded from the raw payload.
	transcript := Transcript{Text: res.Text}
	if raw := res.RawJSON(); raw != "" {
		var verbose Transcript
		if err := json.Unmarshal([]byte(raw), &verbose); err == nil {
			transcript = verbose
			transcript.Text = res.Text
		}
	}
	return transcript, nil
}

// SpeechRequest describes one speech synthesis call.
type SpeechRequest struct {
	Model string
	Voice string
	Text  string
	Speed float64 // zero means provider default (1.0)
}

// Speech calls the Audio Speech API and returns the raw MP3 bytes.
func (c *Client) Speech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	params := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(req.Model),
		Voice:          openai.AudioSpeechNewParamsVoice(req.Voice),
		Input:          req.Text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if req.Speed > 0 {
		params.Speed = openai.Float(req.Speed)
	}
	resp, err := c.sdk.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// TTS writes MP3 audio to the provided writer using the Audio Speech API.
// model should be a TTS-capable model (e.g., tts-1-hd) and voice is a
// supported voice name.
func (c *Client) TTS(ctx context.Context, model, voice, text string, w io.Writer) error {
	req := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(model),
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	resp, err := c.sdk.Audio.Speech.New(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}
