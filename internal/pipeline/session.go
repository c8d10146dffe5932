// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// State is a session's position in the proposal lifecycle.
type State string

const (
	// StateStart is a fresh session with no proposal.
	StateStart State = "start"
	// StateGenerated holds a proposal awaiting review.
	StateGenerated State = "generated"
	// StateLitReviewed has literature feedback on the current proposal.
	StateLitReviewed State = "lit_reviewed"
	// StateFeedbackReceived has feedback ready for an improvement pass.
	StateFeedbackReceived State = "feedback_received"
	// StateImproved has an improved proposal; user feedback loops back.
	StateImproved State = "improved"
)

// Session is the per-conversation container for pipeline state. It is the
// only mutable state in the system; stages receive and return immutable
// values, and the session records which transition produced what. Sessions
// are not safe for concurrent use; concurrent callers get separate sessions.
type Session struct {
	ID    string `json:"id" yaml:"id"`
	State State  `json:"state" yaml:"state"`

	Profile *types.ResearcherProfile `json:"profile,omitempty" yaml:"profile,omitempty"`

	// Original is the version-0 proposal, kept so the development process
	// stays diffable after improvements.
	Original *types.Proposal `json:"original,omitempty" yaml:"original,omitempty"`

	// Current is the latest proposal version.
	Current *types.Proposal `json:"current,omitempty" yaml:"current,omitempty"`

	Literature *types.LiteratureFeedback `json:"literature,omitempty" yaml:"literature,omitempty"`
	Expert     *types.ExpertFeedback     `json:"expert,omitempty" yaml:"expert,omitempty"`

	// UserFeedback is the history of free-text feedback submitted so far.
	UserFeedback []string `json:"user_feedback,omitempty" yaml:"user_feedback,omitempty"`

	// pendingUserFeedback holds feedback submitted but not yet consumed by
	// an improvement pass.
	pendingUserFeedback string

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewSession returns a fresh session in StateStart.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        newSessionID(),
		State:     StateStart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset returns the session to StateStart, discarding the proposal and all
// feedback. The session ID survives so an archived history stays addressable.
func (s *Session) Reset() {
	s.State = StateStart
	s.Profile = nil
	s.Original = nil
	s.Current = nil
	s.Literature = nil
	s.Expert = nil
	s.UserFeedback = nil
	s.pendingUserFeedback = ""
	s.touch()
}

// require checks that the session is in one of the allowed states for the
// named operation.
func (s *Session) require(op string, allowed ...State) error {
	for _, st := range allowed {
		if s.State == st {
			return nil
		}
	}
	return &types.StateError{Op: op, State: string(s.State)}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func newSessionID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	return "session-" + hex.EncodeToString(buf)
}
