// Package models provides functionality for listing and categorizing
// available OpenAI models. It helps users discover which completion,
// vision and transcription models their API key can use with tranx.
package models
