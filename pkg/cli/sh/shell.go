// Package sh provides the interactive shell talking to a module.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/easyvr.go/pkg/config"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
	"github.com/robotalks/easyvr.go/pkg/link"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoOpen    bool
	// TaskTimeout bounds waiting for asynchronous operations, which are
	// stopped when it expires.
	TaskTimeout time.Duration

	Shell   *ishell.Shell
	Config  *config.Config
	Session *easyvr.Session
	Port    *link.Serial
}

const (
	shellKey     = "$shell"
	closedPrompt = "[closed] > "
	taskPoll     = 10 * time.Millisecond
)

var (
	// flags

	evalOnly    bool
	outputJSON  bool
	taskTimeout = time.Minute

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.DurationVar(&taskTimeout, "task-timeout", taskTimeout, "Longest wait for asynchronous operations.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *config.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		TaskTimeout: taskTimeout,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// SessionFrom gets the Session from ishell context.
func SessionFrom(c *ishell.Context) *easyvr.Session {
	return ShellFrom(c).Session
}

// MustBeOpen wraps command func requires an open port.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("port not open"))
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the configured serial port.
func (s *Shell) Open() error {
	session, port, err := s.Config.OpenSession()
	if err != nil {
		return err
	}
	s.Close()
	s.Session, s.Port = session, port
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", port.Device()))
	return nil
}

// Close closes the port.
func (s *Shell) Close() {
	if s.Port != nil {
		s.Port.Close()
		s.Session, s.Port = nil, nil
		s.Shell.SetPrompt(closedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen && s.Config.Port != "" {
		if err := s.Open(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Port, err)
		}
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// WaitTask polls until the pending asynchronous operation finishes, its
// outcome is in the result record. It's stopped when TaskTimeout expires.
func (s *Shell) WaitTask() error {
	task := s.Session.Task()
	deadline := time.Now().Add(s.TaskTimeout)
	for !s.Session.HasFinished() {
		if time.Now().After(deadline) {
			if err := s.Session.Stop(); err != nil {
				return fmt.Errorf("stop %s: %w", task, err)
			}
			return fmt.Errorf("%s not finished in %v", task, s.TaskTimeout)
		}
		time.Sleep(taskPoll)
	}
	return nil
}

// Output prints v as JSON or in its default format.
func Output(c *ishell.Context, v interface{}) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	if s, ok := v.(fmt.Stringer); ok {
		c.Println(s.String())
		return
	}
	c.Printf("%+v\n", v)
}

// Done prints OK or the error.
func Done(c *ishell.Context, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

// IntArgs parses the leading arguments named by names as integers.
func IntArgs(c *ishell.Context, names ...string) ([]int, error) {
	if len(c.Args) < len(names) {
		return nil, fmt.Errorf("%s required", names[len(c.Args)])
	}
	vals := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(c.Args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", name, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// OptIntArg parses an optional integer argument at index.
func OptIntArg(c *ishell.Context, index int, name string, def int) (int, error) {
	if len(c.Args) <= index {
		return def, nil
	}
	v, err := strconv.Atoi(c.Args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := link.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			if ShellFrom(c).OutputJSON {
				Output(c, ports)
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// OpenCmd opens the serial port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[DEVICE [BAUD]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.Port = c.Args[0]
			}
			baud, err := OptIntArg(c, 1, "BAUD", s.Config.Baud)
			if err != nil {
				c.Err(err)
				return
			}
			s.Config.Baud = baud
			if err := s.Config.Validate(); err != nil {
				c.Err(err)
				return
			}
			if err := s.Open(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the serial port.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf := config.Default()
	New(conf).WithAutoOpen(true).Run(flag.Args()...)
}

// ResultFields lists the meaningful values of a result record.
func ResultFields(res easyvr.Result) map[string]interface{} {
	fields := map[string]interface{}{"flags": res.Flags.String()}
	for name, v := range map[string]int{
		"command": res.Command(),
		"word":    res.Word(),
		"token":   res.Token(),
		"error":   res.ErrorCode(),
	} {
		if v >= 0 {
			fields[name] = v
		}
	}
	if err := res.Err(); err != nil {
		fields["message"] = err.Error()
	}
	return fields
}

// Finish waits for the pending asynchronous operation and prints the
// result record.
func Finish(c *ishell.Context) {
	s := ShellFrom(c)
	if err := s.WaitTask(); err != nil {
		c.Err(err)
		return
	}
	Output(c, ResultFields(s.Session.Result()))
}

// StartAndFinish runs start and waits for the operation it started.
func StartAndFinish(c *ishell.Context, start func(*easyvr.Session) error) {
	if err := start(SessionFrom(c)); err != nil {
		c.Err(err)
		return
	}
	Finish(c)
}
