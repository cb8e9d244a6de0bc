// Package commands provides shell commands managing custom commands and
// recognition.
package commands

import (
	"fmt"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/easyvr.go/pkg/cli/sh"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
)

func withCommandRef(fn func(c *ishell.Context, s *easyvr.Session, group, index int) error) func(c *ishell.Context) {
	return sh.MustBeOpen(func(c *ishell.Context) {
		vals, err := sh.IntArgs(c, "GROUP", "INDEX")
		if err != nil {
			c.Err(err)
			return
		}
		if err = fn(c, sh.SessionFrom(c), vals[0], vals[1]); err != nil {
			c.Err(err)
		}
	})
}

func okCommandRef(fn func(s *easyvr.Session, group, index int) error) func(c *ishell.Context) {
	return withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
		if err := fn(s, group, index); err != nil {
			return err
		}
		c.Println("OK")
		return nil
	})
}

var (
	// AddCmd inserts a command.
	AddCmd = ishell.Cmd{
		Name: "cmd.add",
		Help: "GROUP INDEX",
		Func: okCommandRef(func(s *easyvr.Session, group, index int) error {
			return s.AddCommand(group, index)
		}),
	}

	// RemoveCmd removes a command.
	RemoveCmd = ishell.Cmd{
		Name: "cmd.rm",
		Help: "GROUP INDEX",
		Func: okCommandRef(func(s *easyvr.Session, group, index int) error {
			return s.RemoveCommand(group, index)
		}),
	}

	// EraseCmd erases the training of a command.
	EraseCmd = ishell.Cmd{
		Name: "cmd.erase",
		Help: "GROUP INDEX",
		Func: okCommandRef(func(s *easyvr.Session, group, index int) error {
			return s.EraseCommand(group, index)
		}),
	}

	// LabelCmd sets the label of a command.
	LabelCmd = ishell.Cmd{
		Name: "cmd.label",
		Help: "GROUP INDEX LABEL",
		Func: withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
			if len(c.Args) < 3 {
				return fmt.Errorf("LABEL required")
			}
			if err := s.SetCommandLabel(group, index, c.Args[2]); err != nil {
				return err
			}
			c.Println("OK")
			return nil
		}),
	}

	// DumpCmd shows a command.
	DumpCmd = ishell.Cmd{
		Name: "cmd.dump",
		Help: "GROUP INDEX",
		Func: withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
			info, err := s.DumpCommand(group, index)
			if err != nil {
				return err
			}
			sh.Output(c, info)
			return nil
		}),
	}

	// GroupsCmd shows the groups containing commands.
	GroupsCmd = ishell.Cmd{
		Name: "groups",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			mask, err := sh.SessionFrom(c).GroupMask()
			if err != nil {
				c.Err(err)
				return
			}
			groups := []int{}
			for g := 0; g <= easyvr.MaxGroup; g++ {
				if mask&(1<<uint(g)) != 0 {
					groups = append(groups, g)
				}
			}
			sh.Output(c, groups)
		}),
	}

	// ListCmd lists the command labels of a group.
	ListCmd = ishell.Cmd{
		Name:    "cmd.list",
		Aliases: []string{"ls"},
		Help:    "GROUP",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "GROUP")
			if err != nil {
				c.Err(err)
				return
			}
			labels, err := sh.SessionFrom(c).CommandLabels(vals[0])
			if sh.ShellFrom(c).OutputJSON {
				sh.Output(c, labels)
			} else {
				for i, label := range labels {
					c.Printf("%2d %s\n", i, label)
				}
			}
			if err != nil {
				c.Err(err)
			}
		}),
	}

	// GrammarsCmd lists grammars and their words.
	GrammarsCmd = ishell.Cmd{
		Name: "grammars",
		Help: "[GRAMMAR]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			s := sh.SessionFrom(c)
			var grammars []int
			if len(c.Args) > 0 {
				vals, err := sh.IntArgs(c, "GRAMMAR")
				if err != nil {
					c.Err(err)
					return
				}
				grammars = vals
			} else {
				n, err := s.GrammarsCount()
				if err != nil {
					c.Err(err)
					return
				}
				for g := 0; g < n; g++ {
					grammars = append(grammars, g)
				}
			}
			type grammar struct {
				Index   int      `json:"index"`
				Trigger bool     `json:"trigger"`
				Words   []string `json:"words"`
			}
			var result []grammar
			for _, g := range grammars {
				info, words, err := s.WordLabels(g)
				if err != nil {
					c.Err(fmt.Errorf("grammar %d: %w", g, err))
					return
				}
				result = append(result, grammar{Index: g, Trigger: info.IsTrigger(), Words: words})
			}
			if sh.ShellFrom(c).OutputJSON {
				sh.Output(c, result)
				return
			}
			for _, g := range result {
				kind := "commands"
				if g.Trigger {
					kind = "trigger"
				}
				c.Printf("%d (%s): %v\n", g.Index, kind, g.Words)
			}
		}),
	}

	// TrainCmd trains a command.
	TrainCmd = ishell.Cmd{
		Name: "train",
		Help: "GROUP INDEX",
		Func: withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
			c.Println("speak now")
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.TrainCommand(group, index)
			})
			return nil
		}),
	}

	// RecognizeCmd recognizes a command of a group.
	RecognizeCmd = ishell.Cmd{
		Name:    "recognize",
		Aliases: []string{"rec"},
		Help:    "GROUP",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "GROUP")
			if err != nil {
				c.Err(err)
				return
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.RecognizeCommand(vals[0])
			})
		}),
	}

	// RecognizeWordCmd recognizes a word of a word set.
	RecognizeWordCmd = ishell.Cmd{
		Name:    "recognize.word",
		Aliases: []string{"recw"},
		Help:    "WORDSET",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			vals, err := sh.IntArgs(c, "WORDSET")
			if err != nil {
				c.Err(err)
				return
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.RecognizeWord(vals[0])
			})
		}),
	}

	// ExportCmd saves the raw data of a trained command to a file.
	ExportCmd = ishell.Cmd{
		Name: "cmd.export",
		Help: "GROUP INDEX FILE",
		Func: withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
			if len(c.Args) < 3 {
				return fmt.Errorf("FILE required")
			}
			data, err := s.ExportCommand(group, index)
			if err != nil {
				return err
			}
			if err = os.WriteFile(c.Args[2], data, 0644); err != nil {
				return err
			}
			c.Println("OK")
			return nil
		}),
	}

	// ImportCmd loads the raw data of a command from a file and verifies it.
	ImportCmd = ishell.Cmd{
		Name: "cmd.import",
		Help: "GROUP INDEX FILE",
		Func: withCommandRef(func(c *ishell.Context, s *easyvr.Session, group, index int) error {
			if len(c.Args) < 3 {
				return fmt.Errorf("FILE required")
			}
			data, err := os.ReadFile(c.Args[2])
			if err != nil {
				return err
			}
			if err = s.ImportCommand(group, index, data); err != nil {
				return err
			}
			sh.StartAndFinish(c, func(s *easyvr.Session) error {
				return s.VerifyCommand(group, index)
			})
			return nil
		}),
	}
)

func init() {
	sh.AddCmds(
		&AddCmd,
		&RemoveCmd,
		&EraseCmd,
		&LabelCmd,
		&DumpCmd,
		&GroupsCmd,
		&ListCmd,
		&GrammarsCmd,
		&TrainCmd,
		&RecognizeCmd,
		&RecognizeWordCmd,
		&ExportCmd,
		&ImportCmd,
	)
}
