// Package ocr recognizes text in captured pictures. An Engine returns the
// ordered text fragments of one picture; the Adapter joins them into the
// single string used as translation input.
package ocr
