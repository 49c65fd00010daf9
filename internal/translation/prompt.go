package translation

import "fmt"

// BuildPrompt renders the completion prompt for text and target language.
func BuildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following sentence from English text to %s: \n\nEnglish: %s\n %s:",
		targetLanguage, text, targetLanguage)
}
