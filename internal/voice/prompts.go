package voice

import (
	"fmt"
	"strings"
)

// buildMatchingPrompt returns the system prompt for the unified
// voice-matching call: transcribe, extract topics, hashtag, summarize intent,
// and speak a confirmation in the caller's language. The informational fields
// come back as JSON embedded in the text reply; the confirmation comes back
// as the audio part.
func buildMatchingPrompt(language string) string {
	var b strings.Builder
	b.WriteString("You are an intelligent voice matching assistant. Users will tell you what topics they want to discuss. Please:\n\n")
	b.WriteString("1. Understand the user's voice content\n")
	b.WriteString("2. Extract main topics (in English)\n")
	b.WriteString("3. Generate English hashtags (for the matching algorithm)\n")
	fmt.Fprintf(&b, "4. Respond in %s to confirm understanding and start matching\n\n", language)
	b.WriteString("Return the informational fields as JSON:\n")
	b.WriteString("{\n")
	b.WriteString(`    "understood_text": "Specific content spoken by the user",` + "\n")
	b.WriteString(`    "extracted_topics": ["Topic1", "Topic2"],` + "\n")
	b.WriteString(`    "generated_hashtags": ["#hashtag1", "#hashtag2"],` + "\n")
	b.WriteString(`    "match_intent": "Summary of the user's matching intent"` + "\n")
	b.WriteString("}\n\n")
	b.WriteString("Also respond with a friendly voice to confirm understanding and inform that matching is in progress.")
	return b.String()
}

// Moderation modes. The mode selects the framing line of the system prompt;
// the five responsibilities are shared.
const (
	ModeActiveHost  = "active_host"
	ModeSecretary   = "secretary"
	ModeFactChecker = "fact_checker"
)

var moderationFramings = map[string]string{
	ModeActiveHost:  "You are the active host of a voice chat room: keep the conversation moving and everyone engaged.",
	ModeSecretary:   "You are the room's secretary: track what is said, recap, and surface what participants may have missed.",
	ModeFactChecker: "You are the room's fact checker: watch for claims that need verification and address them kindly.",
}

// buildModerationPrompt returns the system prompt for one moderation turn.
// Unknown modes fall back to the active-host framing.
func buildModerationPrompt(mode string, participants []string) string {
	framing, ok := moderationFramings[mode]
	if !ok {
		framing = moderationFramings[ModeActiveHost]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are an intelligent room host and chat secretary. Current mode: %s\n", mode)
	b.WriteString(framing)
	b.WriteString("\n\nYour responsibilities:\n")
	b.WriteString("1. Engage the conversation: actively provide topics when the conversation goes cold\n")
	b.WriteString("2. Fact check: when participants mention potentially inaccurate information, verify it in a friendly way\n")
	b.WriteString("3. Comment: respond appropriately to conversation content and provide suggestions\n")
	b.WriteString("4. Content moderation: keep the conversation friendly and harmonious\n")
	b.WriteString("5. Assistive guidance: help participants communicate better\n\n")
	fmt.Fprintf(&b, "Current room participants: %s\n\n", strings.Join(participants, ", "))
	b.WriteString("Provide an appropriate response based on the input content: a voice reply, a text suggestion, or a topic recommendation. ")
	b.WriteString("The response should be natural, friendly, and helpful.")
	return b.String()
}

// defaultModerationInstruction substitutes when a moderation turn has neither
// audio nor text input.
const defaultModerationInstruction = "Please assist in moderating the conversation"

// buildTopicPrompt returns the system prompt for topic/hashtag extraction.
// contextJSON is optional serialized caller context.
func buildTopicPrompt(language, contextJSON string) string {
	var b strings.Builder
	b.WriteString("You are an expert at analyzing conversation topics and generating relevant hashtags for social matching.\n\n")
	b.WriteString("Your task is to analyze the user's input and extract:\n")
	b.WriteString("1. Main topics (3-5 specific topics)\n")
	b.WriteString("2. Relevant hashtags (5-8 hashtags for matching)\n")
	b.WriteString("3. Category classification\n")
	b.WriteString("4. Sentiment analysis\n")
	b.WriteString("5. Conversation style preference\n\n")
	b.WriteString("Respond in JSON format:\n")
	b.WriteString("{\n")
	b.WriteString(`    "main_topics": ["Topic1", "Topic2", "Topic3"],` + "\n")
	b.WriteString(`    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5"],` + "\n")
	b.WriteString(`    "category": "technology|business|lifestyle|entertainment|education|sports|health|travel|other",` + "\n")
	b.WriteString(`    "sentiment": "positive|negative|neutral",` + "\n")
	b.WriteString(`    "conversation_style": "casual|professional|academic|creative",` + "\n")
	b.WriteString(`    "confidence": 0.95,` + "\n")
	b.WriteString(`    "summary": "Brief summary of what the user wants to discuss"` + "\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "Language preference: %s\n", language)
	b.WriteString("Focus on creating hashtags that will help match users with similar interests.")
	if contextJSON != "" {
		fmt.Fprintf(&b, "\nUser context: %s", contextJSON)
	}
	return b.String()
}
