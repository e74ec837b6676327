package waveform

// Phase is where a preview is in its lifecycle.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePending
	PhaseRendered
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhasePending:
		return "pending"
	case PhaseRendered:
		return "rendered"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RenderState is a snapshot of the preview. Envelope, Path and Metadata are
// only set when Phase is PhaseRendered; Err only when it is PhaseFailed.
// Receivers must treat the slices as read-only.
type RenderState struct {
	Phase     Phase
	Selection uint64
	Source    string
	Envelope  Envelope
	Path      Path
	Metadata  Metadata
	Message   string
	Err       error
}
