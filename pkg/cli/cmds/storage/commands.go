// Package storage provides shell commands for resets, recorded messages
// and I/O pins.
package storage

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/easyvr.go/pkg/cli/sh"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

var resets = map[string]func(s *easyvr.Session, wait bool) error{
	"all":      (*easyvr.Session).ResetAll,
	"commands": (*easyvr.Session).ResetCommands,
	"messages": (*easyvr.Session).ResetMessages,
}

var (
	// ResetCmd erases the module storage.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "all|commands|messages",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("SCOPE required"))
				return
			}
			reset, ok := resets[c.Args[0]]
			if !ok {
				c.Err(fmt.Errorf("unknown scope %q", c.Args[0]))
				return
			}
			if sh.ShellFrom(c).Interactive && c.MultiChoice([]string{"No", "Yes"}, "Erase "+c.Args[0]+"?") != 1 {
				return
			}
			c.Println("erasing, this may take a while")
			sh.Done(c, reset(sh.SessionFrom(c), true))
		}),
	}

	// CheckMessagesCmd checks the message storage.
	CheckMessagesCmd = ishell.Cmd{
		Name: "msg.check",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			s := sh.SessionFrom(c)
			if err := s.CheckMessages(); err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, sh.ResultFields(s.Result()))
		}),
	}

	// FixMessagesCmd repairs the message storage.
	FixMessagesCmd = ishell.Cmd{
		Name: "msg.fix",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Done(c, sh.SessionFrom(c).FixMessages(true))
		}),
	}

	// RecordMessageCmd records a message.
	RecordMessageCmd = ishell.Cmd{
		Name: "msg.record",
		Help: "INDEX [SECONDS]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "INDEX")
			if err != nil {
				c.Err(err)
				return
			}
			timeout, err := sh.OptIntArg(c, 1, "SECONDS", 0)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("recording")
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.RecordMessageAsync(vals[0], int(easyvr.Message8Bit), timeout)
			})
		}),
	}

	// PlayMessageCmd plays a recorded message.
	PlayMessageCmd = ishell.Cmd{
		Name: "msg.play",
		Help: "INDEX [SPEED [ATTENUATION]]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "INDEX")
			if err != nil {
				c.Err(err)
				return
			}
			speed, err := sh.OptIntArg(c, 1, "SPEED", int(easyvr.SpeedNormal))
			if err != nil {
				c.Err(err)
				return
			}
			atten, err := sh.OptIntArg(c, 2, "ATTENUATION", int(easyvr.AttenNone))
			if err != nil {
				c.Err(err)
				return
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.PlayMessageAsync(vals[0], easyvr.MessageSpeed(speed), easyvr.MessageAttenuation(atten))
			})
		}),
	}

	// EraseMessageCmd erases a recorded message.
	EraseMessageCmd = ishell.Cmd{
		Name: "msg.erase",
		Help: "INDEX",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "INDEX")
			if err != nil {
				c.Err(err)
				return
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.EraseMessageAsync(vals[0])
			})
		}),
	}

	// DumpMessageCmd shows a message slot.
	DumpMessageCmd = ishell.Cmd{
		Name: "msg.dump",
		Help: "INDEX",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "INDEX")
			if err != nil {
				c.Err(err)
				return
			}
			info, err := sh.SessionFrom(c).DumpMessage(vals[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, info)
		}),
	}

	// PinOutputCmd sets the level of an output pin.
	PinOutputCmd = ishell.Cmd{
		Name: "pin.out",
		Help: "PIN 0|1",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "PIN", "LEVEL")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Done(c, sh.SessionFrom(c).SetPinOutput(vals[0], easyvr.PinConfig(vals[1])))
		}),
	}

	// PinInputCmd reads an input pin.
	PinInputCmd = ishell.Cmd{
		Name: "pin.in",
		Help: "PIN [CONFIG]: CONFIG 2 high-Z, 3 strong pull-up, 4 weak pull-up",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "PIN")
			if err != nil {
				c.Err(err)
				return
			}
			config, err := sh.OptIntArg(c, 1, "CONFIG", int(easyvr.InputHiZ))
			if err != nil {
				c.Err(err)
				return
			}
			level, err := sh.SessionFrom(c).PinInput(vals[0], easyvr.PinConfig(config))
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, level)
		}),
	}
)

func init() {
	sh.AddCmds(
		&ResetCmd,
		&CheckMessagesCmd,
		&FixMessagesCmd,
		&RecordMessageCmd,
		&PlayMessageCmd,
		&EraseMessageCmd,
		&DumpMessageCmd,
		&PinOutputCmd,
		&PinInputCmd,
	)
}
