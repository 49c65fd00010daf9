// Package failure defines the error taxonomy shared by the input channels,
// the recognition adapter and the translation invoker. Every failure that
// reaches the pipeline controller wraps exactly one of these sentinels.
package failure
