package easyvr

import "fmt"

// ErrorCode is an error reported by the module. Code 0 is never sent by the
// module, it marks a communication failure.
type ErrorCode int

// Module error codes.
const (
	ErrCommunication ErrorCode = 0x00

	// data collection
	ErrDatacolTooLong    ErrorCode = 0x02
	ErrDatacolTooNoisy   ErrorCode = 0x03
	ErrDatacolTooSoft    ErrorCode = 0x04
	ErrDatacolTooLoud    ErrorCode = 0x05
	ErrDatacolTooSoon    ErrorCode = 0x06
	ErrDatacolTooChoppy  ErrorCode = 0x07
	ErrDatacolBadWeights ErrorCode = 0x08
	ErrDatacolBadSetup   ErrorCode = 0x09

	// recognition
	ErrRecogFail        ErrorCode = 0x11
	ErrRecogLowConf     ErrorCode = 0x12
	ErrRecogMidConf     ErrorCode = 0x13
	ErrRecogBadTemplate ErrorCode = 0x14
	ErrRecogBadWeights  ErrorCode = 0x15
	ErrRecogDuration    ErrorCode = 0x17

	// grammar
	ErrT2SIExcessStates ErrorCode = 0x21
	ErrT2SIBadVersion   ErrorCode = 0x22
	ErrT2SIOutOfRAM     ErrorCode = 0x23
	ErrT2SIUnexpected   ErrorCode = 0x24
	ErrT2SIOverflow     ErrorCode = 0x25
	ErrT2SIParameter    ErrorCode = 0x26
	ErrT2SINNTooBig     ErrorCode = 0x29
	ErrT2SINNBadVersion ErrorCode = 0x2A
	ErrT2SINNNotReady   ErrorCode = 0x2B
	ErrT2SINNBadLayers  ErrorCode = 0x2C
	ErrT2SITrigOOV      ErrorCode = 0x2D
	ErrT2SITooShort     ErrorCode = 0x2F

	// record and play
	ErrRPBadLevel  ErrorCode = 0x31
	ErrRPNoMsg     ErrorCode = 0x38
	ErrRPMsgExists ErrorCode = 0x39

	// synthesis
	ErrSynthBadVersion    ErrorCode = 0x4A
	ErrSynthIDNotSet      ErrorCode = 0x4B
	ErrSynthTooManyTables ErrorCode = 0x4C
	ErrSynthBadSen        ErrorCode = 0x4D
	ErrSynthBadMsg        ErrorCode = 0x4E

	// custom
	ErrCustomNOTA    ErrorCode = 0x80
	ErrCustomInvalid ErrorCode = 0x81

	// internal
	ErrSWStackOverflow      ErrorCode = 0xC0
	ErrInternalT2SIBadSetup ErrorCode = 0xCC
)

var errorDescriptions = map[ErrorCode]string{
	ErrCommunication:        "communication failure",
	ErrDatacolTooLong:       "too long (memory overflow)",
	ErrDatacolTooNoisy:      "too noisy",
	ErrDatacolTooSoft:       "spoke too soft",
	ErrDatacolTooLoud:       "spoke too loud",
	ErrDatacolTooSoon:       "spoke too soon",
	ErrDatacolTooChoppy:     "too many segments",
	ErrDatacolBadWeights:    "invalid SI weights",
	ErrDatacolBadSetup:      "invalid setup",
	ErrRecogFail:            "recognition failed",
	ErrRecogLowConf:         "recognition result doubtful",
	ErrRecogMidConf:         "recognition result maybe",
	ErrRecogBadTemplate:     "invalid SD/SV template",
	ErrRecogBadWeights:      "invalid SI weights",
	ErrRecogDuration:        "incompatible pattern durations",
	ErrT2SIExcessStates:     "state structure is too big",
	ErrT2SIBadVersion:       "grammar version mismatch",
	ErrT2SIOutOfRAM:         "reached limit of available RAM",
	ErrT2SIUnexpected:       "unexpected grammar error",
	ErrT2SIOverflow:         "ran out of time to process",
	ErrT2SIParameter:        "bad macro or grammar parameter",
	ErrT2SINNTooBig:         "layer size out of limits",
	ErrT2SINNBadVersion:     "net structure incompatibility",
	ErrT2SINNNotReady:       "initialization not complete",
	ErrT2SINNBadLayers:      "wrong number of layers",
	ErrT2SITrigOOV:          "trigger recognized out of vocabulary",
	ErrT2SITooShort:         "utterance was too short",
	ErrRPBadLevel:           "illegal compression level",
	ErrRPNoMsg:              "message doesn't exist",
	ErrRPMsgExists:          "message already exists",
	ErrSynthBadVersion:      "bad release number in speech file",
	ErrSynthIDNotSet:        "bad sentence structure",
	ErrSynthTooManyTables:   "too many talk tables",
	ErrSynthBadSen:          "bad sentence number",
	ErrSynthBadMsg:          "bad message data or sound table missing",
	ErrCustomNOTA:           "none of the above (out of grammar)",
	ErrCustomInvalid:        "invalid data",
	ErrSWStackOverflow:      "no room left in software stack",
	ErrInternalT2SIBadSetup: "grammar test mode error",
}

// ErrorCategory groups error codes by the module function reporting them.
type ErrorCategory int

// Error categories.
const (
	CategoryUnknown ErrorCategory = iota
	CategoryDataCollection
	CategoryRecognition
	CategoryGrammar
	CategoryMessages
	CategorySynthesis
	CategoryCustom
	CategoryInternal
)

var categoryNames = [...]string{
	CategoryUnknown:        "unknown",
	CategoryDataCollection: "data collection",
	CategoryRecognition:    "recognition",
	CategoryGrammar:        "grammar",
	CategoryMessages:       "messages",
	CategorySynthesis:      "synthesis",
	CategoryCustom:         "custom",
	CategoryInternal:       "internal",
}

// String implements fmt.Stringer.
func (c ErrorCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[CategoryUnknown]
	}
	return categoryNames[c]
}

// Category returns the category of the code.
func (c ErrorCode) Category() ErrorCategory {
	switch {
	case c > 0 && c < 0x10:
		return CategoryDataCollection
	case c >= 0x10 && c < 0x20:
		return CategoryRecognition
	case c >= 0x20 && c < 0x30:
		return CategoryGrammar
	case c >= 0x30 && c < 0x40:
		return CategoryMessages
	case c >= 0x40 && c < 0x50:
		return CategorySynthesis
	case c >= 0x80 && c < 0xC0:
		return CategoryCustom
	case c >= 0xC0 && c <= 0xFF:
		return CategoryInternal
	}
	return CategoryUnknown
}

// Description returns a human readable description, empty for unknown codes.
func (c ErrorCode) Description() string {
	return errorDescriptions[c]
}

// Error implements error.
func (c ErrorCode) Error() string {
	if desc := c.Description(); desc != "" {
		return fmt.Sprintf("module error 0x%02x: %s", int(c), desc)
	}
	return fmt.Sprintf("module error 0x%02x", int(c))
}
