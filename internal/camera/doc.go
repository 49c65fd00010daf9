// Package camera provides the photographed-document input channel: a
// capture facility yields a Picture, or nothing when the user cancels.
package camera
