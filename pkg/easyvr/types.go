package easyvr

import (
	"fmt"
	"time"
)

// ModuleID identifies the module generation and firmware.
type ModuleID int

// Module identifiers.
const (
	ModuleUnknown ModuleID = -1
	VRbot         ModuleID = 0
	EasyVR1       ModuleID = 1
	EasyVR2       ModuleID = 2
	EasyVR2_3     ModuleID = 3
	EasyVR3       ModuleID = 8
	EasyVR3_1     ModuleID = 9
	EasyVR3_2     ModuleID = 10
	EasyVR3_3     ModuleID = 11
	EasyVR3_4     ModuleID = 12
)

var moduleNames = map[ModuleID]string{
	ModuleUnknown: "unknown",
	VRbot:         "VRbot",
	EasyVR1:       "EasyVR",
	EasyVR2:       "EasyVR 2",
	EasyVR2_3:     "EasyVR 2 rev.3",
	EasyVR3:       "EasyVR 3",
	EasyVR3_1:     "EasyVR 3 rev.1",
	EasyVR3_2:     "EasyVR 3 rev.2",
	EasyVR3_3:     "EasyVR 3 rev.3",
	EasyVR3_4:     "EasyVR 3 rev.4",
}

// String implements fmt.Stringer.
func (id ModuleID) String() string {
	if name, ok := moduleNames[id]; ok {
		return name
	}
	return fmt.Sprintf("module(%d)", int(id))
}

// Language of the built-in word sets.
type Language int

// Languages.
const (
	English Language = iota
	Italian
	Japanese
	German
	Spanish
	French
)

var languageNames = [...]string{"english", "italian", "japanese", "german", "spanish", "french"}

// String implements fmt.Stringer.
func (l Language) String() string {
	if l < 0 || int(l) >= len(languageNames) {
		return fmt.Sprintf("language(%d)", int(l))
	}
	return languageNames[l]
}

// ParseLanguage parses a language name.
func ParseLanguage(s string) (Language, error) {
	for i, name := range languageNames {
		if name == s {
			return Language(i), nil
		}
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

// Special command groups.
const (
	// GroupTrigger is shared with the built-in trigger word.
	GroupTrigger = 0
	// GroupPassword uses speaker verification.
	GroupPassword = 16
	// MaxGroup is the highest group index.
	MaxGroup = GroupPassword
	// MaxCommand is the highest command index in a group.
	MaxCommand = 31
)

// Built-in word sets.
const (
	WordsetTrigger = iota
	WordsetAction
	WordsetDirection
	WordsetNumber
)

// Distance selects the microphone operating distance.
type Distance int

// Distances.
const (
	Headset    Distance = 1 // around 5cm
	ArmsLength Distance = 2 // 50cm to 1m
	FarMic     Distance = 3 // up to 3m
)

// Knob is the confidence threshold for built-in words.
type Knob int

// Knob values, from most to fewest results.
const (
	KnobLooser Knob = iota
	KnobLoose
	KnobTypical
	KnobStrict
	KnobStricter
)

// Level is the strictness of custom command recognition.
type Level int

// Levels, from most to fewest results.
const (
	LevelEasy Level = iota + 1
	LevelNormal
	LevelHard
	LevelHarder
	LevelHardest
)

// TrailingSilence is the silence required after a command, in steps of
// 25ms from 100ms.
type TrailingSilence int

// Trailing silence values.
const (
	TrailingMin   TrailingSilence = 0
	TrailingDef   TrailingSilence = 12
	TrailingMax   TrailingSilence = 31
	Trailing100ms TrailingSilence = 0
	Trailing200ms TrailingSilence = 4
	Trailing300ms TrailingSilence = 8
	Trailing400ms TrailingSilence = 12
	Trailing500ms TrailingSilence = 16
	Trailing600ms TrailingSilence = 20
	Trailing700ms TrailingSilence = 24
	Trailing800ms TrailingSilence = 28
)

// Duration returns the silence duration.
func (t TrailingSilence) Duration() time.Duration {
	return 100*time.Millisecond + time.Duration(t)*25*time.Millisecond
}

// CommandLatency selects the custom command recognition settings.
type CommandLatency int

// Latency modes.
const (
	LatencyNormal CommandLatency = iota
	LatencyFast
)

// Baudrate is the bit time argument of ChangeBaudrate.
type Baudrate int

// Baud rates.
const (
	B115200 Baudrate = 1
	B57600  Baudrate = 2
	B38400  Baudrate = 3
	B19200  Baudrate = 6
	B9600   Baudrate = 12
)

// DefaultBaudrate is the module baud rate after power on.
const DefaultBaudrate = 9600

// BPS returns the bit rate.
func (b Baudrate) BPS() int {
	if b <= 0 {
		return 0
	}
	return 115200 / int(b)
}

// BaudrateOf returns the Baudrate for a bit rate.
func BaudrateOf(bps int) (Baudrate, error) {
	switch bps {
	case 115200:
		return B115200, nil
	case 57600:
		return B57600, nil
	case 38400:
		return B38400, nil
	case 19200:
		return B19200, nil
	case 9600:
		return B9600, nil
	}
	return 0, &ArgumentError{Name: "baudrate", Value: bps}
}

// WakeMode selects what wakes the module from sleep.
// Any character received always wakes the module.
type WakeMode int

// Wake modes.
const (
	WakeOnChar      WakeMode = 0
	WakeOnWhistle   WakeMode = 1
	WakeOnLoudSound WakeMode = 2
	WakeOn2Claps    WakeMode = 3
	WakeOn3Claps    WakeMode = 6
)

// ClapSense is the hands-clap threshold, added to WakeOn2Claps or
// WakeOn3Claps.
type ClapSense int

// Clap thresholds.
const (
	ClapSenseLow  ClapSense = 0
	ClapSenseMid  ClapSense = 1
	ClapSenseHigh ClapSense = 2
)

// PinConfig selects a pin mode.
type PinConfig int

// Pin modes.
const (
	OutputLow PinConfig = iota
	OutputHigh
	InputHiZ
	InputStrong // ~10K pull-up
	InputWeak   // ~200K pull-up
)

// Pin numbers. IO4 to IO6 are only available on EasyVR 3.
const (
	IO1 = 1
	IO2 = 2
	IO3 = 3
	IO4 = 4
	IO5 = 5
	IO6 = 6
)

// Sound volumes.
const (
	VolumeMin    = 0
	VolumeHalf   = 7
	VolumeFull   = 15
	VolumeDouble = 31
)

// SoundBeep is the index of the built-in beep.
const SoundBeep = 0

// MaxSoundIndex is the highest sound table index.
const MaxSoundIndex = 1023

// Phone tones, DTMF digits are 0 to 9.
const (
	ToneStar  = 10
	TonePound = 11
	ToneA     = 12
	ToneD     = 15
	ToneDial  = -1
)

// GrammarFlagTrigger marks a trigger grammar, as opposed to commands.
const GrammarFlagTrigger = 0x10

// RejectionLevel is the noise rejection of token detection.
type RejectionLevel int

// Rejection levels.
const (
	RejectionMin RejectionLevel = iota
	RejectionAvg
	RejectionMax
)

// MessageSpeed is the message playback speed.
type MessageSpeed int

// Playback speeds.
const (
	SpeedNormal MessageSpeed = iota
	SpeedFaster
)

// MessageAttenuation is the message playback attenuation.
type MessageAttenuation int

// Attenuations.
const (
	AttenNone MessageAttenuation = iota
	Atten2dB2
	Atten4dB5
	Atten6dB7
)

// MessageType is the encoding of a recorded message.
type MessageType int

// Message types.
const (
	MessageEmpty MessageType = 0
	Message8Bit  MessageType = 8
)

// Lipsync thresholds.
const (
	LipsyncThresholdDef = 270
	LipsyncThresholdMax = 1023
)

// RawCommandSize is the size of an exported command.
const RawCommandSize = 258
