// Package session implements the form session controller: the submission
// state machine, staged loading hints and the export handoff.
package session

import "time"

// State is the submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// HintStage is the loading hint currently displayed.
type HintStage int

const (
	HintNone HintStage = iota
	HintInitial
	HintWaking
	HintStillWaking
)

// Hint escalation schedule, measured from the start of a request.
const (
	WakingAfter      = 2500 * time.Millisecond
	StillWakingAfter = 12 * time.Second
)

const (
	hintInitialText     = "Generating your study plan..."
	hintWakingText      = "Waking up the server, this can take a little while..."
	hintStillWakingText = "Still waking up the server. Thanks for your patience..."
)

// Text returns the message shown for the stage.
func (h HintStage) Text() string {
	switch h {
	case HintInitial:
		return hintInitialText
	case HintWaking:
		return hintWakingText
	case HintStillWaking:
		return hintStillWakingText
	default:
		return ""
	}
}

// StatusKind classifies the status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusSuccess
	StatusError
)

const (
	// GenericErrorMessage is shown when the server gave no usable message.
	GenericErrorMessage = "Error generating study plan. Please try again later."
	successMessage      = "Study plan generated."
)

// Model is everything the UI needs to draw the session. It is a plain value;
// the zero Model is the idle state.
type Model struct {
	State State
	// Seq identifies the current or most recent submission.
	Seq  uint64
	Hint HintStage

	Status     string
	StatusKind StatusKind

	// Plan is the sanitized generated plan, empty when none is held.
	Plan string
	// ShowPlaceholder reveals the result hint after a failed submission.
	ShowPlaceholder bool
}

// Loading reports whether a submission is in flight.
func (m Model) Loading() bool { return m.State == StateLoading }

// SubmitEnabled reports whether a new submission may start.
func (m Model) SubmitEnabled() bool { return m.State != StateLoading }

// ExportEnabled reports whether copy and PDF export are available. It is
// true exactly when a non-empty plan is held.
func (m Model) ExportEnabled() bool { return m.Plan != "" }

// HintText returns the loading hint to display, if any.
func (m Model) HintText() string { return m.Hint.Text() }

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// SubmitStarted begins submission Seq after both validation gates passed.
type SubmitStarted struct{ Seq uint64 }

// ValidationFailed aborts a submission before any network call.
type ValidationFailed struct{ Message string }

// HintElapsed fires when a hint timer of submission Seq expires.
type HintElapsed struct {
	Seq   uint64
	Stage HintStage
}

// Succeeded settles submission Seq with a sanitized plan.
type Succeeded struct {
	Seq  uint64
	Plan string
}

// Failed settles submission Seq with a user-facing message.
type Failed struct {
	Seq     uint64
	Message string
}

// Notice replaces the status line without touching the lifecycle.
type Notice struct {
	Kind    StatusKind
	Message string
}

func (SubmitStarted) isEvent()    {}
func (ValidationFailed) isEvent() {}
func (HintElapsed) isEvent()      {}
func (Succeeded) isEvent()        {}
func (Failed) isEvent()           {}
func (Notice) isEvent()           {}

// Reduce is the pure transition function of the submission state machine.
// Events that do not apply to the current state return m unchanged.
func Reduce(m Model, ev Event) Model {
	switch ev := ev.(type) {
	case SubmitStarted:
		if m.Loading() {
			return m
		}
		return Model{
			State: StateLoading,
			Seq:   ev.Seq,
			Hint:  HintInitial,
		}

	case ValidationFailed:
		if m.Loading() {
			return m
		}
		m.Status = ev.Message
		m.StatusKind = StatusError
		return m

	case HintElapsed:
		// A timer that fired after settlement, or for an older submission,
		// must not touch the hint.
		if !m.Loading() || ev.Seq != m.Seq || ev.Stage <= m.Hint {
			return m
		}
		m.Hint = ev.Stage
		return m

	case Succeeded:
		if !m.Loading() || ev.Seq != m.Seq {
			return m
		}
		m = endLoading(m)
		if ev.Plan == "" {
			return failure(m, GenericErrorMessage)
		}
		m.State = StateSuccess
		m.Plan = ev.Plan
		m.ShowPlaceholder = false
		m.Status = successMessage
		m.StatusKind = StatusSuccess
		return m

	case Failed:
		if !m.Loading() || ev.Seq != m.Seq {
			return m
		}
		msg := ev.Message
		if msg == "" {
			msg = GenericErrorMessage
		}
		return failure(endLoading(m), msg)

	case Notice:
		m.Status = ev.Message
		m.StatusKind = ev.Kind
		return m
	}
	return m
}

// endLoading hides the loading affordances. Settlement applies it before the
// outcome so no path leaves the spinner or a hint visible.
func endLoading(m Model) Model {
	m.State = StateIdle
	m.Hint = HintNone
	return m
}

func failure(m Model, msg string) Model {
	m.State = StateError
	m.Plan = ""
	m.ShowPlaceholder = true
	m.Status = msg
	m.StatusKind = StatusError
	return m
}
