// Package processor contains the application logic of tranx. It wires
// the input channels, the recognition adapter and the translation invoker
// into a pipeline controller and drives it for a single sentence, a batch
// file or the interactive console. This package serves as the main
// coordinator between all other components.
package processor
