// Package translation turns a sentence into its translation in a fixed
// target language using a text-completion service. OpenAI completions and
// Google Gemini are supported, optionally behind a circuit breaker.
package translation
