package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewElevenLabsRequiresKey(t *testing.T) {
	if _, err := NewElevenLabs(""); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}

func TestElevenLabsSynthesize(t *testing.T) {
	fakeAudio := []byte("fake mp3 payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "el-test" {
			t.Errorf("missing or incorrect API key header")
		}
		if r.URL.Path != "/v1/text-to-speech/voice-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("output_format"); got != elevenLabsDefaultOutputFormat {
			t.Errorf("unexpected output_format: %s", got)
		}
		var body struct {
			Text    string `json:"text"`
			ModelID string `json:"model_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body.Text != "hello" {
			t.Errorf("unexpected text: %q", body.Text)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(fakeAudio)
	}))
	defer server.Close()

	client, err := NewElevenLabs("el-test", WithElevenLabsBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	reader, err := client.Synthesize(context.Background(), &ElevenLabsTTSRequest{
		VoiceID: "voice-1",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	defer reader.Close()
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if !bytes.Equal(got, fakeAudio) {
		t.Fatalf("audio mismatch: %q", got)
	}
}

func TestElevenLabsSynthesizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad key"}`))
	}))
	defer server.Close()

	client, err := NewElevenLabs("el-test", WithElevenLabsBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = client.Synthesize(context.Background(), &ElevenLabsTTSRequest{VoiceID: "v", Text: "x"})
	apiErr, ok := err.(*ElevenLabsAPIError)
	if !ok {
		t.Fatalf("expected ElevenLabsAPIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestElevenLabsTTSWritesAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer server.Close()

	client, err := NewElevenLabs("el-test", WithElevenLabsBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var out bytes.Buffer
	if err := client.TTS(context.Background(), "eleven_multilingual_v2", "voice-1", "hi", &out); err != nil {
		t.Fatalf("tts: %v", err)
	}
	if out.String() != "mp3" {
		t.Fatalf("unexpected audio: %q", out.String())
	}
}
