// Package protocol provides the wire tables and codecs of the EasyVR protocol.
package protocol

// The EasyVR protocol is a half-duplex command/response protocol over an
// asynchronous serial link. Every exchange starts with a single command byte
// (a printable ASCII letter), optionally followed by argument bytes, and the
// module replies with a single status byte. Additional status arguments are
// pulled one at a time by sending ArgAck.
//
// Argument bytes are restricted to 0x40..0x60, carrying values from -1 to 31.
// Larger values are split into groups of 4 or 5 bits, labels are sent as
// counted strings where digits are escaped with '^'.
//
// This package has no I/O. The framing and status dispatch live in package
// easyvr.
