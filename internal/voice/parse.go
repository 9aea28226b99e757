package voice

import (
	"encoding/json"
	"strings"
)

// matchReplyFields are the informational fields embedded as JSON in a
// voice-matching reply.
type matchReplyFields struct {
	UnderstoodText    string   `json:"understood_text"`
	ExtractedTopics   []string `json:"extracted_topics"`
	GeneratedHashtags []string `json:"generated_hashtags"`
	MatchIntent       string   `json:"match_intent"`
}

// matchReplyFallback is the substitute when a matching reply carries no
// parseable JSON. UnderstoodText is filled from the raw reply by the caller.
func matchReplyFallback(raw string) matchReplyFields {
	return matchReplyFields{
		UnderstoodText:    raw,
		ExtractedTopics:   []string{"General topic"},
		GeneratedHashtags: []string{"#general"},
		MatchIntent:       "Wants to chat",
	}
}

// parseMatchReply decodes the JSON portion of a matching reply. The second
// return is false when the fallback was substituted.
func parseMatchReply(raw string) (matchReplyFields, bool) {
	var fields matchReplyFields
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &fields); err != nil {
		return matchReplyFallback(raw), false
	}
	return fields, true
}

// topicReplyFallback is the substitute when a topic-extraction reply is not
// valid JSON. Distinct from the request-failure fallback: the model did
// answer, so confidence stays at 0.5 and the raw reply is preserved.
func topicReplyFallback(raw string) TopicExtractionResult {
	return TopicExtractionResult{
		MainTopics:        []string{"general", "conversation"},
		Hashtags:          []string{"#chat", "#social", "#conversation"},
		Category:          "other",
		Sentiment:         "neutral",
		ConversationStyle: "casual",
		Confidence:        0.5,
		Summary:           "General conversation topic",
		RawResponse:       raw,
	}
}

// topicErrorFallback is the substitute when the topic-extraction request
// itself failed.
func topicErrorFallback(errText string) TopicExtractionResult {
	return TopicExtractionResult{
		MainTopics:        []string{"general"},
		Hashtags:          []string{"#general", "#chat"},
		Category:          "other",
		Sentiment:         "neutral",
		ConversationStyle: "casual",
		Confidence:        0.1,
		Summary:           "Could not analyze topics",
		Error:             errText,
	}
}

// parseTopicReply decodes a topic-extraction reply. The second return is
// false when the fallback was substituted.
func parseTopicReply(raw string) (TopicExtractionResult, bool) {
	var result TopicExtractionResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		return topicReplyFallback(raw), false
	}
	return result, true
}

// stripCodeFences removes a wrapping markdown code block, which models
// sometimes add around JSON replies.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}
