package ocr

import (
	"fmt"

	"golang.org/x/text/language"
)

// TesseractLanguages maps BCP-47 or ISO 639 language hints ("en", "deu")
// to the three-letter codes used by Tesseract trained data.
func TesseractLanguages(hints []string) ([]string, error) {
	if len(hints) == 0 {
		return []string{"eng"}, nil
	}

	langs := make([]string, 0, len(hints))
	seen := make(map[string]bool)
	for _, hint := range hints {
		base, err := language.ParseBase(hint)
		if err != nil {
			return nil, fmt.Errorf("invalid OCR language %q: %w", hint, err)
		}
		code := base.ISO3()
		if !seen[code] {
			seen[code] = true
			langs = append(langs, code)
		}
	}
	return langs, nil
}
