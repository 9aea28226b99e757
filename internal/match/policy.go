// Package match holds the pure matching rules: hashtag overlap scoring for
// candidate ranking and the policy for when the AI host may invite a second
// participant into a call.
package match

import (
	"strings"
	"time"
)

// SessionStatus is the lifecycle state of a hosted call session.
type SessionStatus string

const (
	StatusWaiting SessionStatus = "waiting"
	StatusActive  SessionStatus = "active"
	StatusEnded   SessionStatus = "ended"
)

// InvitePolicy decides when the AI host may invite a second user:
// after MinExchanges completed exchanges, or once MaxWait has elapsed since
// the session started, and only while the session is still waiting.
type InvitePolicy struct {
	MinExchanges int
	MaxWait      time.Duration

	now func() time.Time
}

// NewInvitePolicy returns the policy with the standard thresholds.
// clock is optional; tests inject a fake.
func NewInvitePolicy(clock func() time.Time) *InvitePolicy {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &InvitePolicy{
		MinExchanges: 4,
		MaxWait:      5 * time.Minute,
		now:          clock,
	}
}

// CanInvite reports whether the host may trigger an invitation.
func (p *InvitePolicy) CanInvite(status SessionStatus, exchanges int, startedAt time.Time) bool {
	if status != StatusWaiting {
		return false
	}
	if exchanges >= p.MinExchanges {
		return true
	}
	return p.now().Sub(startedAt) >= p.MaxWait
}

// OverlapScore returns the share of shared hashtags between two tag lists,
// ignoring case and leading '#'. 0 means disjoint, 1 means identical sets.
func OverlapScore(a, b []string) float64 {
	setA := normalizeTags(a)
	setB := normalizeTags(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for tag := range setA {
		if setB[tag] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

func normalizeTags(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if tag != "" {
			set[tag] = true
		}
	}
	return set
}
