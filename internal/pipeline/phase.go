package pipeline

// Phase is the observable state of the controller
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseCapturing
	PhaseRecognized
	PhaseTranslating
	PhaseTranslated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseEditing:
		return "Editing"
	case PhaseCapturing:
		return "Capturing"
	case PhaseRecognized:
		return "Recognized"
	case PhaseTranslating:
		return "Translating"
	case PhaseTranslated:
		return "Translated"
	default:
		return "Unknown"
	}
}
