package cli

// Flags holds all command-line flag values
type Flags struct {
	CfgFile        string
	TargetLanguage string
	Provider       string
	Model          string
	ImagePath      string
	AudioPath      string
	BatchFile      string
	OCREngine      string
	ClearOnCapture bool
	ListModels     bool
	LogFile        string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		TargetLanguage: "Chinese",
		Provider:       "openai",
		OCREngine:      "tesseract",
	}
}

// OneShot reports whether the flags and arguments ask for a single pipeline
// pass instead of the interactive console
func (f *Flags) OneShot(args []string) bool {
	return len(args) > 0 || f.ImagePath != "" || f.AudioPath != ""
}
