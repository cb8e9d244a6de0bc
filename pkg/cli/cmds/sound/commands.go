// Package sound provides shell commands for sound playback, SonicNet tokens
// and lip-sync.
package sound

import (
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/easyvr.go/pkg/cli/sh"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

// lipsyncPoll is the interval of mouth position reads.
const lipsyncPoll = 20 * time.Millisecond

var (
	// PlayCmd plays a sound of the sound table.
	PlayCmd = ishell.Cmd{
		Name: "play",
		Help: "INDEX [VOLUME]: 0 is the beep, VOLUME 0-31 (15 full)",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "INDEX")
			if err != nil {
				c.Err(err)
				return
			}
			volume, err := sh.OptIntArg(c, 1, "VOLUME", easyvr.VolumeFull)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Done(c, sh.SessionFrom(c).PlaySound(vals[0], volume))
		}),
	}

	// TableCmd shows the sound table.
	TableCmd = ishell.Cmd{
		Name: "sounds",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			table, err := sh.SessionFrom(c).DumpSoundTable()
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, table)
		}),
	}

	// ToneCmd plays a phone tone.
	ToneCmd = ishell.Cmd{
		Name: "tone",
		Help: "TONE DURATION: TONE 0-9, 10 *, 11 #, 12-15 A-D, -1 dial tone",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "TONE", "DURATION")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Done(c, sh.SessionFrom(c).PlayPhoneTone(vals[0], vals[1]))
		}),
	}

	// DetectTokenCmd waits for a SonicNet token.
	DetectTokenCmd = ishell.Cmd{
		Name: "token.detect",
		Help: "BITS [REJECTION [TIMEOUT(ms)]]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "BITS")
			if err != nil {
				c.Err(err)
				return
			}
			rejection, err := sh.OptIntArg(c, 1, "REJECTION", int(easyvr.RejectionAvg))
			if err != nil {
				c.Err(err)
				return
			}
			timeout, err := sh.OptIntArg(c, 2, "TIMEOUT", 0)
			if err != nil {
				c.Err(err)
				return
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.DetectToken(vals[0], easyvr.RejectionLevel(rejection), time.Duration(timeout)*time.Millisecond)
			})
		}),
	}

	// SendTokenCmd plays a SonicNet token.
	SendTokenCmd = ishell.Cmd{
		Name: "token.send",
		Help: "BITS TOKEN",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "BITS", "TOKEN")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Done(c, sh.SessionFrom(c).SendToken(vals[0], vals[1]))
		}),
	}

	// EmbedTokenCmd schedules a token in the next sound playback.
	EmbedTokenCmd = ishell.Cmd{
		Name: "token.embed",
		Help: "BITS TOKEN DELAY(ms)",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "BITS", "TOKEN", "DELAY")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Done(c, sh.SessionFrom(c).EmbedToken(vals[0], vals[1], time.Duration(vals[2])*time.Millisecond))
		}),
	}

	// LipsyncCmd prints mouth positions of the microphone input.
	LipsyncCmd = ishell.Cmd{
		Name: "lipsync",
		Help: "SECONDS [THRESHOLD]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "SECONDS")
			if err != nil {
				c.Err(err)
				return
			}
			threshold, err := sh.OptIntArg(c, 1, "THRESHOLD", easyvr.LipsyncThresholdDef)
			if err != nil {
				c.Err(err)
				return
			}
			s := sh.SessionFrom(c)
			if err = s.RealtimeLipsync(threshold, time.Duration(vals[0])*time.Second); err != nil {
				c.Err(err)
				return
			}
			for {
				pos, ok := s.FetchMouthPosition()
				if !ok {
					break
				}
				c.Printf("%-32s|\n", bar(pos))
				time.Sleep(lipsyncPoll)
			}
			sh.Output(c, sh.ResultFields(s.Result()))
		}),
	}
)

func bar(pos int) string {
	return fmt.Sprintf("%.*s", pos, "################################")
}

func init() {
	sh.AddCmds(
		&PlayCmd,
		&TableCmd,
		&ToneCmd,
		&DetectTokenCmd,
		&SendTokenCmd,
		&EmbedTokenCmd,
		&LipsyncCmd,
	)
}
