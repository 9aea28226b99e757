package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}

func TestNewClientStoresFields(t *testing.T) {
	c, err := New("sk-test", "https://example.com/v1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.APIKey() != "sk-test" {
		t.Fatalf("apikey mismatch")
	}
	if c.BaseURL() != "https://example.com/v1" {
		t.Fatalf("baseURL mismatch")
	}
}

func TestVoiceChatRequiresInputPart(t *testing.T) {
	c, err := New("sk-test", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := c.VoiceChat(context.Background(), VoiceChatRequest{Model: "gpt-4o-audio-preview"}); err == nil {
		t.Fatalf("expected error without audio or text input")
	}
}

func TestVoiceChatSendsAudioPart(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		body = b
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {
					"role": "assistant",
					"content": "ok",
					"audio": {"id": "audio-1", "data": "d2F2", "transcript": "okay", "expires_at": 0}
				}
			}],
			"usage": {"prompt_tokens": 7, "completion_tokens": 5, "total_tokens": 12}
		}`))
	}))
	defer server.Close()

	client, err := New("sk-test", server.URL+"/")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	reply, err := client.VoiceChat(context.Background(), VoiceChatRequest{
		Model:       "gpt-4o-audio-preview",
		Voice:       "alloy",
		AudioFormat: "wav",
		System:      "be brief",
		AudioB64:    "c29tZSBhdWRpbw==",
		InputFormat: "wav",
	})
	if err != nil {
		t.Fatalf("voice chat: %v", err)
	}
	if reply.Text != "ok" || reply.AudioB64 != "d2F2" || reply.AudioTranscript != "okay" {
		t.Fatalf("reply mismatch: %+v", reply)
	}
	if reply.Usage.InputTokens != 7 || reply.Usage.OutputTokens != 5 || reply.Usage.TotalTokens != 12 {
		t.Fatalf("usage mismatch: %+v", reply.Usage)
	}

	payload := string(body)
	if !strings.Contains(payload, `"input_audio"`) {
		t.Fatalf("input audio part missing from request: %s", payload)
	}
	if !strings.Contains(payload, `"format":"wav"`) {
		t.Fatalf("input audio format missing from request: %s", payload)
	}
	if !strings.Contains(payload, `"data":"c29tZSBhdWRpbw=="`) {
		t.Fatalf("input audio data missing from request: %s", payload)
	}
}
