package listener

import (
	"encoding/json"
	"fmt"
)

// Remote command operations.
const (
	OpPause  = "pause"
	OpResume = "resume"
	OpListen = "listen"
	OpPlay   = "play"
)

// Command is a remote request executed in the loop.
type Command struct {
	Op string `json:"op"`
	// Group and Wordset select what to listen to for OpListen.
	Group   *int `json:"group,omitempty"`
	Wordset *int `json:"wordset,omitempty"`
	// Sound and Volume are used by OpPlay, Volume defaults to full.
	Sound  int  `json:"sound"`
	Volume *int `json:"volume,omitempty"`
}

// ParseCommand decodes a JSON command.
func ParseCommand(payload []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}
	switch cmd.Op {
	case OpPause, OpResume, OpPlay:
	case OpListen:
		if (cmd.Group == nil) == (cmd.Wordset == nil) {
			return nil, fmt.Errorf("listen requires exactly one of group or wordset")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Op)
	}
	return &cmd, nil
}
