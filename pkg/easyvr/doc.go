// Package easyvr implements the host side of the EasyVR serial protocol.
package easyvr

// A Session drives one module over a Port. Every exchange is synchronous:
// the command byte is written after flushing stale input, arguments follow,
// then a single status byte is awaited within a timeout. Status arguments are
// pulled one at a time with an acknowledgement byte.
//
// Training, recognition, playback, recording and token detection are long
// running on the module. The corresponding methods only send the command and
// return; the caller polls HasFinished at its own cadence and reads the
// outcome from the result accessors (Command, Word, Token, ErrorCode, ...).
// Stop aborts a running operation.
//
// A Session is not safe for concurrent use. Calling operations from more than
// one goroutine corrupts the result record, drive it from a single goroutine
// (e.g. a framework.Loop).
