// Package module provides shell commands for module control and settings.
package module

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/easyvr.go/pkg/cli/sh"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
	"github.com/robotalks/easyvr.go/pkg/easyvr/bridge"
	"github.com/robotalks/easyvr.go/pkg/link"
)

type setting struct {
	help  string
	apply func(s *easyvr.Session, arg string) error
}

func intSetting(help string, fn func(s *easyvr.Session, v int) error) setting {
	return setting{help: help, apply: func(s *easyvr.Session, arg string) error {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid value: %v", err)
		}
		return fn(s, v)
	}}
}

var settings = map[string]setting{
	"language": {help: "english|italian|japanese|german|spanish|french", apply: func(s *easyvr.Session, arg string) error {
		lang, err := easyvr.ParseLanguage(arg)
		if err != nil {
			return err
		}
		return s.SetLanguage(lang)
	}},
	"timeout": intSetting("SECONDS (0 infinite)", func(s *easyvr.Session, v int) error {
		return s.SetTimeout(v)
	}),
	"distance": intSetting("1 headset, 2 arm's length, 3 far", func(s *easyvr.Session, v int) error {
		return s.SetMicDistance(easyvr.Distance(v))
	}),
	"knob": intSetting("0 looser .. 4 stricter", func(s *easyvr.Session, v int) error {
		return s.SetKnob(easyvr.Knob(v))
	}),
	"level": intSetting("1 easy .. 5 hardest", func(s *easyvr.Session, v int) error {
		return s.SetLevel(easyvr.Level(v))
	}),
	"trailing": intSetting("0 (100ms) .. 31 (875ms)", func(s *easyvr.Session, v int) error {
		return s.SetTrailingSilence(easyvr.TrailingSilence(v))
	}),
	"latency": intSetting("0 normal, 1 fast", func(s *easyvr.Session, v int) error {
		return s.SetCommandLatency(easyvr.CommandLatency(v))
	}),
	"delay": {help: "DURATION e.g. 20ms", apply: func(s *easyvr.Session, arg string) error {
		d, err := time.ParseDuration(arg)
		if err != nil {
			return err
		}
		return s.SetDelay(d)
	}},
}

var (
	// DetectCmd detects the module.
	DetectCmd = ishell.Cmd{
		Name: "detect",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Done(c, sh.SessionFrom(c).Detect())
		}),
	}

	// IDCmd identifies the module.
	IDCmd = ishell.Cmd{
		Name: "id",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			id, err := sh.SessionFrom(c).ID()
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, map[string]interface{}{"id": int(id), "name": id.String()})
		}),
	}

	// StopCmd interrupts the running operation.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Done(c, sh.SessionFrom(c).Stop())
		}),
	}

	// SleepCmd puts the module to sleep and waits for the wake up.
	SleepCmd = ishell.Cmd{
		Name: "sleep",
		Help: "MODE [SENSE]: 0 char, 1 whistle, 2 loud sound, 3 two claps, 6 three claps",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "MODE")
			if err != nil {
				c.Err(err)
				return
			}
			sense, err := sh.OptIntArg(c, 1, "SENSE", int(easyvr.ClapSenseLow))
			if err != nil {
				c.Err(err)
				return
			}
			if err = sh.SessionFrom(c).Sleep(easyvr.WakeMode(vals[0]), easyvr.ClapSense(sense)); err != nil {
				c.Err(err)
				return
			}
			c.Println("sleeping")
		}),
	}

	// SetCmd changes a recognition setting.
	SetCmd = ishell.Cmd{
		Name: "set",
		Help: "SETTING VALUE",
		LongHelp: func() string {
			help := "Settings:\n"
			for name, s := range settings {
				help += fmt.Sprintf("  %s: %s\n", name, s.help)
			}
			return help
		}(),
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("SETTING and VALUE required"))
				return
			}
			s, ok := settings[c.Args[0]]
			if !ok {
				c.Err(fmt.Errorf("unknown setting %q", c.Args[0]))
				return
			}
			sh.Done(c, s.apply(sh.SessionFrom(c), c.Args[1]))
		}),
	}

	// BaudCmd changes the bit rate of the module and the port.
	BaudCmd = ishell.Cmd{
		Name: "baud",
		Help: "BPS",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "BPS")
			if err != nil {
				c.Err(err)
				return
			}
			baud, err := easyvr.BaudrateOf(vals[0])
			if err != nil {
				c.Err(err)
				return
			}
			s := sh.ShellFrom(c)
			if err = s.Session.ChangeBaudrate(baud); err != nil {
				c.Err(err)
				return
			}
			if err = s.Port.SetBaudrate(baud.BPS()); err != nil {
				c.Err(err)
				return
			}
			s.Config.Baud = baud.BPS()
			c.Println("OK")
		}),
	}

	// BridgeCmd relays a companion serial port to the module.
	BridgeCmd = ishell.Cmd{
		Name: "bridge",
		Help: "DEVICE",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("DEVICE required"))
				return
			}
			s := sh.ShellFrom(c)
			companion, err := link.OpenSerial(link.SerialConfig{Device: c.Args[0], Baud: s.Config.Baud})
			if err != nil {
				c.Err(err)
				return
			}
			defer companion.Close()
			mode, err := bridge.Requested(companion, easyvr.SystemClock)
			if err != nil {
				c.Err(err)
				return
			}
			if mode == bridge.None {
				c.Println("no bridge requested")
				return
			}
			c.Printf("%s bridge, send '?' or press Ctrl-C to leave\n", mode)
			if mode == bridge.Boot {
				if err = s.Port.SetBaudrate(bridge.BootBaudrate); err != nil {
					c.Err(err)
					return
				}
				defer s.Port.SetBaudrate(s.Config.Baud)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			sh.Done(c, bridge.Relay(ctx, s.Port, companion, easyvr.SystemClock))
		}),
	}
)

func init() {
	sh.AddCmds(
		&DetectCmd,
		&IDCmd,
		&StopCmd,
		&SleepCmd,
		&SetCmd,
		&BaudCmd,
		&BridgeCmd,
	)
}
