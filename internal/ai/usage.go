package ai

import openai "github.com/openai/openai-go/v3"

// TokenUsage captures token usage returned by the Chat Completions API.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CachedTokens int64
	AudioTokens  int64
}

func usageFromCompletion(usage openai.CompletionUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		TotalTokens:  usage.TotalTokens,
		CachedTokens: usage.PromptTokensDetails.CachedTokens,
		AudioTokens:  usage.PromptTokensDetails.AudioTokens + usage.CompletionTokensDetails.AudioTokens,
	}
}
