package protocol

import "fmt"

// Command identifies a request sent to the module.
// Several commands share the same wire letter, they are told apart by the
// arguments following the command byte.
type Command int

// Commands.
const (
	CmdBreak      Command = iota // abort recognition or ping
	CmdSleep                     // go to power down <mode>
	CmdKnob                      // set SI knob <knob>
	CmdMicDist                   // set microphone distance (-1) <dist>
	CmdLevel                     // set SD level <level>
	CmdVerifyRP                  // verify messages (-1) <0=check, 1=fix>
	CmdLanguage                  // set SI language <lang>
	CmdLipsync                   // start real-time lipsync (-1) <threshold:2> <timeout:2>
	CmdTimeout                   // set recognition timeout <seconds>
	CmdRecogSI                   // recognize built-in words of wordset <ws>
	CmdTrainSD                   // train command <group> <index>
	CmdTrailing                  // set trailing silence (-1) <dur>
	CmdGroupSD                   // insert command <group> <index>
	CmdUngroupSD                 // remove command <group> <index>
	CmdRecogSD                   // recognize commands of <group>
	CmdDumpRP                    // dump message (-1) <index>
	CmdEraseSD                   // erase training of <group> <index>
	CmdEraseRP                   // erase message (-1) <index>
	CmdNameSD                    // label command <group> <index> <len> <units...>
	CmdCountSD                   // count commands in <group>
	CmdDumpSD                    // dump command <group> <index>
	CmdPlayRP                    // play message (-1) <index> <speed|atten>
	CmdMaskSD                    // get mask of non-empty groups
	CmdResetAll                  // reset memory, scope selected by ResetScope
	CmdRecordRP                  // record message (-1) <index> <bits> <timeout>
	CmdID                        // get module ID
	CmdDelay                     // set reply delay <delay>
	CmdBaudrate                  // set baudrate <bit time>
	CmdQueryIO                   // configure/read/write pin <pin> <config>
	CmdPlaySX                    // play sound table entry <index:2> <volume>
	CmdPlayDTMF                  // play (-1) phone tone <tone> <duration>
	CmdDumpSX                    // dump sound table
	CmdDumpSI                    // dump grammar <grammar> (or count with -1)
	CmdSendSN                    // send SonicNet token <bits> <token:2> <delay:2>
	CmdRecvSN                    // receive SonicNet token <bits> <rejection> <timeout:2>
	CmdFastSD                    // set fast SD/SV (-1) <mode>
	CmdService                   // service request <ServiceCode> ...

	numCommands
)

var commandBytes = [numCommands]byte{
	CmdBreak:     'b',
	CmdSleep:     's',
	CmdKnob:      'k',
	CmdMicDist:   'k',
	CmdLevel:     'v',
	CmdVerifyRP:  'v',
	CmdLanguage:  'l',
	CmdLipsync:   'l',
	CmdTimeout:   'o',
	CmdRecogSI:   'i',
	CmdTrainSD:   't',
	CmdTrailing:  't',
	CmdGroupSD:   'g',
	CmdUngroupSD: 'u',
	CmdRecogSD:   'd',
	CmdDumpRP:    'd',
	CmdEraseSD:   'e',
	CmdEraseRP:   'e',
	CmdNameSD:    'n',
	CmdCountSD:   'c',
	CmdDumpSD:    'p',
	CmdPlayRP:    'p',
	CmdMaskSD:    'm',
	CmdResetAll:  'r',
	CmdRecordRP:  'r',
	CmdID:        'x',
	CmdDelay:     'y',
	CmdBaudrate:  'a',
	CmdQueryIO:   'q',
	CmdPlaySX:    'w',
	CmdPlayDTMF:  'w',
	CmdDumpSX:    'h',
	CmdDumpSI:    'z',
	CmdSendSN:    'j',
	CmdRecvSN:    'f',
	CmdFastSD:    'f',
	CmdService:   '~',
}

var commandNames = [numCommands]string{
	CmdBreak:     "break",
	CmdSleep:     "sleep",
	CmdKnob:      "knob",
	CmdMicDist:   "mic-dist",
	CmdLevel:     "level",
	CmdVerifyRP:  "verify-rp",
	CmdLanguage:  "language",
	CmdLipsync:   "lipsync",
	CmdTimeout:   "timeout",
	CmdRecogSI:   "recog-si",
	CmdTrainSD:   "train-sd",
	CmdTrailing:  "trailing",
	CmdGroupSD:   "group-sd",
	CmdUngroupSD: "ungroup-sd",
	CmdRecogSD:   "recog-sd",
	CmdDumpRP:    "dump-rp",
	CmdEraseSD:   "erase-sd",
	CmdEraseRP:   "erase-rp",
	CmdNameSD:    "name-sd",
	CmdCountSD:   "count-sd",
	CmdDumpSD:    "dump-sd",
	CmdPlayRP:    "play-rp",
	CmdMaskSD:    "mask-sd",
	CmdResetAll:  "reset",
	CmdRecordRP:  "record-rp",
	CmdID:        "id",
	CmdDelay:     "delay",
	CmdBaudrate:  "baudrate",
	CmdQueryIO:   "query-io",
	CmdPlaySX:    "play-sx",
	CmdPlayDTMF:  "play-dtmf",
	CmdDumpSX:    "dump-sx",
	CmdDumpSI:    "dump-si",
	CmdSendSN:    "send-sn",
	CmdRecvSN:    "recv-sn",
	CmdFastSD:    "fast-sd",
	CmdService:   "service",
}

// IsValid indicates c is a known command.
func (c Command) IsValid() bool {
	return c >= 0 && c < numCommands
}

// Byte returns the wire byte of the command.
func (c Command) Byte() byte {
	if !c.IsValid() {
		return 0
	}
	return commandBytes[c]
}

// String implements fmt.Stringer.
func (c Command) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return fmt.Sprintf("%s(%c)", commandNames[c], commandBytes[c])
}

// Status identifies the leading byte of a reply.
type Status int

// Statuses. StatusUnknown is never sent by the module, it represents any byte
// not found in the status table.
const (
	StatusUnknown   Status = iota
	StatusService          // service reply <ServiceCode> ...
	StatusMask             // mask of active groups <8 nibbles>
	StatusCount            // count of commands or grammars <count>
	StatusAwaken           // back from power down
	StatusData             // command data <training> <conflict> <label>
	StatusError            // error code <hi> <lo>
	StatusInvalid          // invalid command or argument
	StatusTimeout          // timeout expired
	StatusLipsync          // lipsync stream follows
	StatusInterr           // back from aborted operation
	StatusSuccess          // no errors
	StatusResult           // recognized command <index>
	StatusSimilar          // recognized built-in word <index>
	StatusOutOfMem         // no more room for commands
	StatusID               // module ID <id>
	StatusPin              // pin state <value>
	StatusTableSX          // sound table <count:2> <label>
	StatusGrammar          // grammar <flags> <count> <labels...>
	StatusToken            // received SonicNet token <hi> <lo>
	StatusMessage          // message <type> <length:12>

	numStatuses
)

var statusBytes = [numStatuses]byte{
	StatusService:  '~',
	StatusMask:     'k',
	StatusCount:    'c',
	StatusAwaken:   'w',
	StatusData:     'd',
	StatusError:    'e',
	StatusInvalid:  'v',
	StatusTimeout:  't',
	StatusLipsync:  'l',
	StatusInterr:   'i',
	StatusSuccess:  'o',
	StatusResult:   'r',
	StatusSimilar:  's',
	StatusOutOfMem: 'm',
	StatusID:       'x',
	StatusPin:      'p',
	StatusTableSX:  'h',
	StatusGrammar:  'z',
	StatusToken:    'f',
	StatusMessage:  'g',
}

var statusNames = [numStatuses]string{
	StatusUnknown:  "unknown",
	StatusService:  "service",
	StatusMask:     "mask",
	StatusCount:    "count",
	StatusAwaken:   "awaken",
	StatusData:     "data",
	StatusError:    "error",
	StatusInvalid:  "invalid",
	StatusTimeout:  "timeout",
	StatusLipsync:  "lipsync",
	StatusInterr:   "interrupted",
	StatusSuccess:  "success",
	StatusResult:   "result",
	StatusSimilar:  "similar",
	StatusOutOfMem: "out-of-memory",
	StatusID:       "id",
	StatusPin:      "pin",
	StatusTableSX:  "table-sx",
	StatusGrammar:  "grammar",
	StatusToken:    "token",
	StatusMessage:  "message",
}

var statusByByte [256]Status

func init() {
	for s := StatusUnknown + 1; s < numStatuses; s++ {
		statusByByte[statusBytes[s]] = s
	}
}

// StatusOf maps a received byte to a Status.
func StatusOf(b byte) Status {
	return statusByByte[b]
}

// Byte returns the wire byte of the status, 0 for StatusUnknown.
func (s Status) Byte() byte {
	if s <= StatusUnknown || s >= numStatuses {
		return 0
	}
	return statusBytes[s]
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < StatusUnknown || s >= numStatuses {
		return fmt.Sprintf("status(%d)", int(s))
	}
	if s == StatusUnknown {
		return statusNames[s]
	}
	return fmt.Sprintf("%s(%c)", statusNames[s], statusBytes[s])
}

// ServiceCode is the first argument of a service request or reply.
type ServiceCode byte

// Service codes.
const (
	SvcExportSD ServiceCode = 'X' // export command as raw dump
	SvcImportSD ServiceCode = 'I' // import command from raw dump
	SvcVerifySD ServiceCode = 'V' // verify training of imported command
	SvcDumpSD   ServiceCode = 'D' // reply: raw command data follows
)

// Arg returns the code as argument value.
func (c ServiceCode) Arg() int8 {
	return int8(int(c) - ArgZero)
}

// ResetScope selects the memory erased by CmdResetAll.
type ResetScope byte

// Reset scopes.
const (
	ResetScopeAll      ResetScope = 'R' // commands, groups and messages
	ResetScopeCommands ResetScope = 'D' // commands and groups only
	ResetScopeMessages ResetScope = 'M' // messages only
)

// Arg returns the scope as argument value.
func (s ResetScope) Arg() int8 {
	return int8(int(s) - ArgZero)
}

// Bridge handshake bytes exchanged on the companion link.
const (
	BridgeProbe      byte = 0x99
	BridgeRequest    byte = 0xBB
	BridgeRequestAck byte = 0xCC
	BridgeNormal     byte = 0xDD
	BridgeNormalAck  byte = 0xEE
	BridgeBoot       byte = 0xAA
	BridgeBootAck    byte = 0xFF
	BridgeEscape     byte = '?'
)
