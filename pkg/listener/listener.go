// Package listener runs continuous recognition on a module and reports the
// results as events.
package listener

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
	fx "github.com/robotalks/easyvr.go/pkg/framework"
)

// DefaultRetryDelay is the pause after a failed start of recognition.
const DefaultRetryDelay = time.Second

// Sink receives events, e.g. an mqtt.Publisher.
type Sink interface {
	Publish(event interface{}) error
}

// Listener is a loop controller keeping the module recognizing. It owns the
// Session, which must not be used by other goroutines while the loop runs.
type Listener struct {
	Session *easyvr.Session
	Sink    Sink
	// Group is the command group to recognize, -1 to use Wordset.
	Group   int
	Wordset int
	// Labels of the commands in Group, by index.
	Labels []string
	// ReportTimeouts publishes EventTimeout, which happens every time
	// nothing is said within the recognition timeout.
	ReportTimeouts bool
	RetryDelay     time.Duration

	paused     bool
	retryAfter time.Time
}

// New creates a Listener recognizing commands in group.
func New(s *easyvr.Session, sink Sink, group int) *Listener {
	return &Listener{Session: s, Sink: sink, Group: group, RetryDelay: DefaultRetryDelay}
}

// Paused tells whether recognition is paused by a remote command.
func (l *Listener) Paused() bool {
	return l.paused
}

// AddToLoop implements LoopAdder.
func (l *Listener) AddToLoop(loop *fx.Loop) {
	loop.AddController(l)
}

// Control implements Controller.
func (l *Listener) Control(cc fx.ControlContext) error {
	for _, msg := range cc.Messages() {
		if cmd, ok := msg.(*Command); ok {
			if err := l.execute(cc, cmd); err != nil {
				l.emit(cc.Time(), Event{Type: EventError, Group: l.Group, Error: err.Error()})
			}
		}
	}

	s := l.Session
	if s.Busy() {
		task := s.Task()
		if !s.HasFinished() {
			return nil
		}
		l.finished(cc.Time(), task, s.Result())
	}
	if l.paused || cc.Time().Before(l.retryAfter) {
		return nil
	}
	if err := l.start(); err != nil {
		l.retryAfter = cc.Time().Add(l.retryDelay())
		l.emit(cc.Time(), Event{Type: EventError, Group: l.Group, Error: err.Error()})
		return fmt.Errorf("start recognition: %w", err)
	}
	return nil
}

func (l *Listener) retryDelay() time.Duration {
	if l.RetryDelay > 0 {
		return l.RetryDelay
	}
	return DefaultRetryDelay
}

func (l *Listener) start() error {
	if l.Group < 0 {
		return l.Session.RecognizeWord(l.Wordset)
	}
	return l.Session.RecognizeCommand(l.Group)
}

func (l *Listener) finished(now time.Time, task easyvr.Task, res easyvr.Result) {
	var ev Event
	switch task {
	case easyvr.TaskRecognizeCommand, easyvr.TaskRecognizeWord:
		ev = eventOf(res, l.Group, l.Wordset, l.Labels)
		if ev.Type == EventTimeout && !l.ReportTimeouts {
			glog.V(2).Info("listener: recognition timeout")
			return
		}
	case easyvr.TaskPlaySound:
		ev = Event{Type: EventPlayed, Group: l.Group, Flags: res.Flags.String()}
		if err := res.Err(); err != nil {
			ev.Type, ev.Error = EventError, err.Error()
		}
	default:
		glog.Warningf("listener: unexpected task %s finished", task)
		return
	}
	l.emit(now, ev)
}

// interrupt stops the pending operation so another can be started.
func (l *Listener) interrupt() error {
	if !l.Session.Busy() {
		return nil
	}
	return l.Session.Stop()
}

func (l *Listener) execute(cc fx.ControlContext, cmd *Command) error {
	glog.V(2).Infof("listener: command %s", cmd.Op)
	switch cmd.Op {
	case OpPause:
		if err := l.interrupt(); err != nil {
			return err
		}
		l.paused = true
		l.emit(cc.Time(), Event{Type: EventState, Group: l.Group, State: "paused"})
	case OpResume:
		l.paused = false
		l.retryAfter = time.Time{}
		l.emit(cc.Time(), Event{Type: EventState, Group: l.Group, State: "listening"})
	case OpListen:
		if err := l.interrupt(); err != nil {
			return err
		}
		if cmd.Group != nil {
			if *cmd.Group != l.Group {
				l.Labels = nil
			}
			l.Group = *cmd.Group
		} else {
			l.Group, l.Wordset, l.Labels = -1, *cmd.Wordset, nil
		}
		l.retryAfter = time.Time{}
	case OpPlay:
		if err := l.interrupt(); err != nil {
			return err
		}
		volume := easyvr.VolumeFull
		if cmd.Volume != nil {
			volume = *cmd.Volume
		}
		return l.Session.PlaySoundAsync(cmd.Sound, volume)
	default:
		return fmt.Errorf("unknown command %q", cmd.Op)
	}
	return nil
}

func (l *Listener) emit(now time.Time, ev Event) {
	ev.Time = now
	glog.V(2).Infof("listener: event %s %d %q", ev.Type, ev.Index, ev.Label)
	if l.Sink == nil {
		return
	}
	if err := l.Sink.Publish(&ev); err != nil {
		glog.Warningf("listener: publish %s: %v", ev.Type, err)
	}
}
