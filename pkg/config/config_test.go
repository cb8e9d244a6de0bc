package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

func TestDefaultsValid(t *testing.T) {
	conf := NewConfig()
	require.NoError(t, conf.Validate())
	require.False(t, Default() == conf)
	require.Equal(t, easyvr.DefaultTimeouts(), conf.SessionTimeouts())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easyvr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: /dev/ttyS1
baud: 115200
id: kitchen
recognition:
  language: italian
  group: -1
  wordset: 3
timeouts:
  reply: 250ms
  reset: 1m
`), 0644))

	conf := NewConfig()
	require.NoError(t, conf.LoadFile(path))
	require.NoError(t, conf.Validate())
	require.Equal(t, "/dev/ttyS1", conf.Port)
	require.Equal(t, 115200, conf.Baud)
	require.Equal(t, "italian", conf.Recognition.Language)
	require.Equal(t, -1, conf.Recognition.Group)
	require.Equal(t, easyvr.WordsetNumber, conf.Recognition.Wordset)
	// untouched keys keep defaults
	require.Equal(t, Default().MQTTURL, conf.MQTTURL)
	require.Equal(t, Default().Recognition.Timeout, conf.Recognition.Timeout)

	id, err := conf.DeviceID()
	require.NoError(t, err)
	require.Equal(t, "kitchen", id)

	timeouts := conf.SessionTimeouts()
	require.Equal(t, 250*time.Millisecond, timeouts.Reply)
	require.Equal(t, time.Minute, timeouts.ResetAll)
	require.Equal(t, time.Minute, timeouts.ResetMessages)
	require.Equal(t, easyvr.DefaultTimeouts().Storage, timeouts.Storage)
	require.Equal(t, easyvr.DefaultTimeouts().FixMessages, timeouts.FixMessages)

	serial := conf.Serial()
	require.Equal(t, "/dev/ttyS1", serial.Device)
	require.Equal(t, 115200, serial.Baud)
}

func TestLoadFileErrors(t *testing.T) {
	conf := NewConfig()
	require.Error(t, conf.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeouts:\n  reply: soon\n"), 0644))
	require.Error(t, conf.LoadFile(path))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Port = "" }},
		{"baud", func(c *Config) { c.Baud = 4800 }},
		{"retries", func(c *Config) { c.DetectRetries = -1 }},
		{"mqtt scheme", func(c *Config) { c.MQTTURL = "http://localhost/" }},
		{"language", func(c *Config) { c.Recognition.Language = "klingon" }},
		{"group", func(c *Config) { c.Recognition.Group = 17 }},
		{"wordset", func(c *Config) { c.Recognition.Group, c.Recognition.Wordset = -1, 4 }},
		{"timeout", func(c *Config) { c.Recognition.Timeout = 32 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf := NewConfig()
			c.modify(conf)
			require.Error(t, conf.Validate())
		})
	}

	conf := NewConfig()
	conf.MQTTURL = ""
	require.NoError(t, conf.Validate())
}
