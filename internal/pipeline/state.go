package pipeline

import "codeberg.org/snonux/tranx/internal/camera"

// Snapshot is a copy of the controller state for the presentation layer
type Snapshot struct {
	Input     string
	Picture   *camera.Picture
	Fragments []string
	Result    string
	HasResult bool
	Listening bool
	Phase     Phase
}

// generations identify the latest operation per slot. A completion whose
// generation no longer matches is stale.
type generations struct {
	speech    uint64
	capture   uint64
	picture   uint64
	translate uint64
}

func (g *generations) bumpAll() {
	g.speech++
	g.capture++
	g.picture++
	g.translate++
}

type state struct {
	input            string
	inputFromPicture bool

	picture    *camera.Picture
	fragments  []string
	ocrPending bool

	result        string
	hasResult     bool
	resultCurrent bool
	translating   bool

	listening bool

	gen generations
}

func (s *state) setInput(text string, fromPicture bool) {
	s.input = text
	s.inputFromPicture = fromPicture
	s.resultCurrent = false
}

func (s *state) phase() Phase {
	switch {
	case s.translating:
		return PhaseTranslating
	case s.picture != nil && s.ocrPending:
		return PhaseCapturing
	case s.resultCurrent:
		return PhaseTranslated
	case s.picture != nil && s.inputFromPicture:
		return PhaseRecognized
	case s.input != "":
		return PhaseEditing
	default:
		return PhaseIdle
	}
}

func (s *state) reset() {
	gen := s.gen
	*s = state{gen: gen}
	s.gen.bumpAll()
}

func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		Input:     s.input,
		Result:    s.result,
		HasResult: s.hasResult,
		Listening: s.listening,
		Phase:     s.phase(),
	}
	if s.picture != nil {
		pic := *s.picture
		snap.Picture = &pic
	}
	if s.fragments != nil {
		snap.Fragments = append([]string(nil), s.fragments...)
	}
	return snap
}
