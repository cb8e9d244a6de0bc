package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

func TestResultFields(t *testing.T) {
	require.Equal(t, map[string]interface{}{
		"flags":   "command",
		"command": 3,
	}, ResultFields(easyvr.Result{Flags: easyvr.FlagCommand, Value: 3}))

	fields := ResultFields(easyvr.Result{Flags: easyvr.FlagError, Value: 0x11})
	require.Equal(t, 0x11, fields["error"])
	require.Equal(t, easyvr.ErrRecogFail.Error(), fields["message"])

	require.Equal(t, map[string]interface{}{"flags": "none"}, ResultFields(easyvr.Result{}))
}
