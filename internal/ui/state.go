package ui

import (
	"github.com/phambaophuc/image-analyzer/internal/models"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseRejected   Phase = "rejected"
	PhaseInFlight   Phase = "in_flight"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

const (
	MsgMissingInput   = "Please select an image and enter a question."
	MsgMissingAPIKey  = "Please enter your API key."
	MsgGenericFailure = "An error occurred"
)

type EventKind int

const (
	EventFileSelected EventKind = iota
	EventFileRejected
	EventQueryChanged
	EventCredentialChanged
	EventSubmit
	EventSucceeded
	EventFailed
	EventClear
)

// Event is one user action or request outcome fed to Transition.
type Event struct {
	Kind    EventKind
	File    *SelectedFile
	Value   string
	Result  *models.AnalysisResult
	Message string
}

// SelectedFile points at a held preview.
type SelectedFile struct {
	PreviewID string
	Name      string
}

// State is everything the form shows. It is a value; Transition never
// mutates its input.
type State struct {
	Phase      Phase
	File       *SelectedFile
	Query      string
	Credential string
	Result     *models.AnalysisResult
	Error      string
}

// Effect tells the caller what to do after a transition.
type Effect struct {
	// ReleasePreview is a preview id that is no longer referenced.
	ReleasePreview string
	// Dispatch is set when exactly one analysis request must be sent.
	Dispatch bool
}

func (s State) Loading() bool {
	return s.Phase == PhaseInFlight
}

// Transition is the only way State changes.
func Transition(s State, ev Event) (State, Effect) {
	var effect Effect

	if s.Phase == PhaseInFlight {
		switch ev.Kind {
		case EventSucceeded:
			s.Phase = PhaseSucceeded
			s.Result = ev.Result
			s.Error = ""
		case EventFailed:
			s.Phase = PhaseFailed
			s.Result = nil
			s.Error = ev.Message
			if s.Error == "" {
				s.Error = MsgGenericFailure
			}
		}
		// Input is locked while a request is outstanding.
		return s, effect
	}

	switch s.Phase {
	case PhaseRejected, PhaseFailed, PhaseValidating:
		s.Phase = PhaseIdle
		s.Error = ""
	case PhaseSucceeded:
		s.Phase = PhaseIdle
	}

	switch ev.Kind {
	case EventFileSelected:
		if s.File != nil && (ev.File == nil || s.File.PreviewID != ev.File.PreviewID) {
			effect.ReleasePreview = s.File.PreviewID
		}
		s.File = ev.File
		s.Result = nil
		s.Error = ""

	case EventFileRejected:
		// The previous selection, if any, stays usable.
		s.Phase = PhaseRejected
		s.Error = ev.Message

	case EventQueryChanged:
		s.Query = ev.Value

	case EventCredentialChanged:
		s.Credential = ev.Value

	case EventSubmit:
		s.Phase = PhaseValidating
		switch {
		case s.File == nil || s.Query == "":
			s.Phase = PhaseRejected
			s.Error = MsgMissingInput
		case s.Credential == "":
			s.Phase = PhaseRejected
			s.Error = MsgMissingAPIKey
		default:
			s.Phase = PhaseInFlight
			s.Error = ""
			s.Result = nil
			effect.Dispatch = true
		}

	case EventClear:
		if s.File != nil {
			effect.ReleasePreview = s.File.PreviewID
		}
		s = State{Phase: PhaseIdle, Credential: s.Credential}
	}

	return s, effect
}
