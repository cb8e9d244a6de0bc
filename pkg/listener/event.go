package listener

import (
	"time"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

// Event types.
const (
	EventCommand  = "command"
	EventWord     = "word"
	EventTimeout  = "timeout"
	EventAwakened = "awakened"
	EventInvalid  = "invalid"
	EventError    = "error"
	EventPlayed   = "played"
	EventState    = "state"
)

// Event is published for every finished operation.
type Event struct {
	Type string    `json:"type"`
	Time time.Time `json:"time"`
	// Group is the command group, or -1 with Wordset for built-in words.
	Group   int    `json:"group"`
	Wordset int    `json:"wordset,omitempty"`
	Index   int    `json:"index,omitempty"`
	Label   string `json:"label,omitempty"`
	Flags   string `json:"flags,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
	// State is set for EventState: listening or paused.
	State string `json:"state,omitempty"`
}

// Meta is published as the retained device metadata.
type Meta struct {
	Device   string   `json:"device"`
	Module   string   `json:"module"`
	ModuleID int      `json:"module_id"`
	Language string   `json:"language"`
	Group    int      `json:"group"`
	Wordset  int      `json:"wordset,omitempty"`
	Labels   []string `json:"labels,omitempty"`
}

// Words of the built-in word sets, in index order.
var Words = map[int][]string{
	easyvr.WordsetTrigger:   {"robot"},
	easyvr.WordsetAction:    {"action", "move", "turn", "run", "look", "attack", "stop", "hello"},
	easyvr.WordsetDirection: {"left", "right", "up", "down", "forward", "backward"},
	easyvr.WordsetNumber:    {"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"},
}

func wordLabel(wordset, index int) string {
	if words := Words[wordset]; index >= 0 && index < len(words) {
		return words[index]
	}
	return ""
}

// eventOf converts the result of a finished recognition.
func eventOf(res easyvr.Result, group, wordset int, labels []string) Event {
	ev := Event{Group: group, Flags: res.Flags.String()}
	if group < 0 {
		ev.Wordset = wordset
	}
	switch {
	case res.Flags.Has(easyvr.FlagCommand):
		ev.Type, ev.Index = EventCommand, res.Command()
		if ev.Index >= 0 && ev.Index < len(labels) {
			ev.Label = labels[ev.Index]
		}
	case res.Flags.Has(easyvr.FlagBuiltin):
		ev.Type, ev.Index = EventWord, res.Word()
		ev.Label = wordLabel(wordset, ev.Index)
	case res.Flags.Has(easyvr.FlagTimeout):
		ev.Type = EventTimeout
	case res.Flags.Has(easyvr.FlagAwakened):
		ev.Type = EventAwakened
	case res.Flags.Has(easyvr.FlagInvalid):
		ev.Type = EventInvalid
	default:
		ev.Type = EventError
		ev.Code = res.ErrorCode()
		if err := res.Err(); err != nil {
			ev.Error = err.Error()
		}
	}
	return ev
}
