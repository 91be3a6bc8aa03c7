// Package dashboard implements the ask-a-question interaction flow: prompt
// selection, custom question entry, one outbound call per submission and the
// loading flag around it.
package dashboard

import (
	"askdash/internal/identity"
	"askdash/internal/prompt"
)

// FailureMessage replaces the response text whenever a call fails.
const FailureMessage = "An error occurred while processing your request."

// Request is the body sent to the ask endpoint.
type Request struct {
	Question  string        `json:"question"`
	User      identity.User `json:"user"`
	LLMChoice string        `json:"llm_choice"`
}

// State is everything the view renders. It is created empty and lives for
// the duration of the session.
type State struct {
	SelectedPromptID string
	CustomQuestion   string
	Response         string
	Loading          bool
}

// SelectPrompt records the selection. Leaving "custom" drops any typed text.
func (s *State) SelectPrompt(id string) {
	s.SelectedPromptID = id
	if id != prompt.CustomID {
		s.CustomQuestion = ""
	}
}

// EditCustomQuestion stores free text as typed. Empty is allowed.
func (s *State) EditCustomQuestion(text string) {
	s.CustomQuestion = text
}

// CanSubmit reports whether the submit control is enabled. It is false while
// loading, and otherwise true when either a prompt is selected or text is
// typed, each checked on its own, so text with no selection still counts.
//
// This deliberately departs from the plain "selection or text" rule in one
// case: "custom" with nothing typed is not a usable selection and does not
// enable submit, so an empty custom question is never sent.
func (s State) CanSubmit() bool {
	if s.Loading {
		return false
	}
	if s.SelectedPromptID == prompt.CustomID && s.CustomQuestion == "" {
		return false
	}
	return s.SelectedPromptID != "" || s.CustomQuestion != ""
}

// Question resolves what gets sent: the typed text for "custom", otherwise the
// selected prompt id.
func (s State) Question() string {
	if s.SelectedPromptID == prompt.CustomID {
		return s.CustomQuestion
	}
	return s.SelectedPromptID
}

// Idle reports whether no call is outstanding.
func (s State) Idle() bool {
	return !s.Loading
}
