package easyvr

import (
	"fmt"

	"github.com/robotalks/easyvr.go/pkg/easyvr/protocol"
)

func checkCommand(group, index int) error {
	if err := checkRange("group", group, 0, MaxGroup); err != nil {
		return err
	}
	return checkRange("index", index, 0, MaxCommand)
}

// sendCommandRef starts an exchange addressing a command in a group.
func (s *Session) sendCommandRef(cmd protocol.Command, group, index int) {
	s.sendCmd(cmd)
	s.sendGroup(group)
	s.sendArg(int8(index))
}

// AddCommand inserts a new command at index in group. When the module runs
// out of memory ErrMemoryFull is returned and IsMemoryFull reports it.
func (s *Session) AddCommand(group, index int) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendCommandRef(protocol.CmdGroupSD, group, index)
	b, err := s.recvStatus(s.Timeouts.Storage)
	if err != nil {
		s.result = Result{}
		return err
	}
	switch protocol.StatusOf(b) {
	case protocol.StatusSuccess:
		return nil
	case protocol.StatusOutOfMem:
		s.result = Result{Flags: FlagMemoryFull}
		return ErrMemoryFull
	}
	s.result = Result{}
	return statusErr(b, protocol.StatusSuccess)
}

// RemoveCommand removes the command at index from group.
func (s *Session) RemoveCommand(group, index int) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendCommandRef(protocol.CmdUngroupSD, group, index)
	return s.expect(s.Timeouts.Storage, protocol.StatusSuccess)
}

// SetCommandLabel sets the label of a command. Letters are uppercased,
// digits are allowed and anything else becomes '_'. The label is silently
// truncated to what fits in 31 units, each digit taking two.
func (s *Session) SetCommandLabel(group, index int, name string) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendCommandRef(protocol.CmdNameSD, group, index)
	for _, b := range protocol.EncodeLabel(name) {
		s.send(b)
	}
	return s.expect(s.Timeouts.Storage, protocol.StatusSuccess)
}

// EraseCommand erases the training of a command.
func (s *Session) EraseCommand(group, index int) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendCommandRef(protocol.CmdEraseSD, group, index)
	return s.expect(s.Timeouts.Storage, protocol.StatusSuccess)
}

// GroupMask returns the mask of groups containing at least one command,
// bit n set for group n.
func (s *Session) GroupMask() (uint32, error) {
	s.sendCmd(protocol.CmdMaskSD)
	if err := s.expect(s.Timeouts.Reply, protocol.StatusMask); err != nil {
		return 0, err
	}
	args, ok := s.recvArgs(protocol.MaskArgs)
	if !ok {
		return 0, ErrBadReply
	}
	return protocol.UnpackMask(args), nil
}

// CommandCount returns the number of commands in group.
func (s *Session) CommandCount(group int) (int, error) {
	if err := checkRange("group", group, 0, MaxGroup); err != nil {
		return 0, err
	}
	s.sendCmd(protocol.CmdCountSD)
	s.sendArg(int8(group))
	if err := s.expect(s.Timeouts.Reply, protocol.StatusCount); err != nil {
		return 0, err
	}
	n, ok := s.recvCount()
	if !ok {
		return 0, ErrBadReply
	}
	return n, nil
}

// CommandInfo is the data of a custom command.
type CommandInfo struct {
	Label string
	// Training is the number of training sessions, 0 to 2.
	Training int
	// Conflict is set when the command is similar to another command
	// (ConflictCommand) or built-in word (ConflictWord).
	Conflict        bool
	ConflictCommand int
	ConflictWord    int
}

// DumpCommand reads the data of a command. The conflict, if any, is also
// reported by IsConflict with Command or Word. An unused slot reports no
// training and no conflict.
func (s *Session) DumpCommand(group, index int) (*CommandInfo, error) {
	if err := checkCommand(group, index); err != nil {
		return nil, err
	}
	s.sendCommandRef(protocol.CmdDumpSD, group, index)
	if err := s.expect(s.Timeouts.Reply, protocol.StatusData); err != nil {
		return nil, err
	}
	rx, ok := s.recvArg()
	if !ok {
		return nil, s.badReply()
	}
	info := &CommandInfo{Training: int(rx) & 0x07}
	if rx == -1 || info.Training == 7 {
		info.Training = 0
	}
	var r Result
	if rx != -1 {
		if rx&0x18 != 0 {
			r.Flags |= FlagConflict
		}
		if rx&0x08 != 0 {
			r.Flags |= FlagCommand
		}
		if rx&0x10 != 0 {
			r.Flags |= FlagBuiltin
		}
	}
	v, ok := s.recvArg()
	if !ok {
		return nil, s.badReply()
	}
	r.Value = int(v)
	if info.Label, ok = s.recvLabel(); !ok {
		return nil, s.badReply()
	}
	s.result = r
	info.Conflict = r.IsConflict()
	info.ConflictCommand = r.Command()
	info.ConflictWord = r.Word()
	return info, nil
}

// CommandLabels reads the labels of all commands in group, by index.
func (s *Session) CommandLabels(group int) ([]string, error) {
	n, err := s.CommandCount(group)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		info, err := s.DumpCommand(group, i)
		if err != nil {
			return labels, fmt.Errorf("command %d: %w", i, err)
		}
		labels = append(labels, info.Label)
	}
	return labels, nil
}

// badReply records a failed follow-up read.
func (s *Session) badReply() error {
	s.result = Result{Flags: FlagError}
	if s.txErr != nil {
		return s.txErr
	}
	return ErrBadReply
}

// GrammarsCount returns the number of built-in and custom grammars.
func (s *Session) GrammarsCount() (int, error) {
	s.sendCmd(protocol.CmdDumpSI)
	s.sendArg(-1)
	if err := s.expect(s.Timeouts.Reply, protocol.StatusCount); err != nil {
		return 0, err
	}
	n, ok := s.recvCount()
	if !ok {
		return 0, ErrBadReply
	}
	return n, nil
}

// GrammarInfo describes a grammar.
type GrammarInfo struct {
	Flags int
	Count int
}

// IsTrigger indicates a trigger grammar.
func (g GrammarInfo) IsTrigger() bool {
	return g.Flags&GrammarFlagTrigger != 0
}

// DumpGrammar starts reading a grammar. The labels of its Count words must be
// read with NextWordLabel before any other command is issued.
func (s *Session) DumpGrammar(grammar int) (GrammarInfo, error) {
	var info GrammarInfo
	if err := checkRange("grammar", grammar, 0, int(protocol.MaxArg)); err != nil {
		return info, err
	}
	s.sendCmd(protocol.CmdDumpSI)
	s.sendArg(int8(grammar))
	if err := s.expect(s.Timeouts.Reply, protocol.StatusGrammar); err != nil {
		return info, err
	}
	flags, ok := s.recvCount()
	if !ok {
		return info, ErrBadReply
	}
	count, ok := s.recvArg()
	if !ok {
		return info, ErrBadReply
	}
	info.Flags, info.Count = flags, int(count)
	return info, nil
}

// NextWordLabel reads the next word label of the grammar being dumped.
func (s *Session) NextWordLabel() (string, error) {
	label, ok := s.recvLabel()
	if !ok {
		return "", ErrBadReply
	}
	return label, nil
}

// WordLabels dumps a grammar with all its word labels.
func (s *Session) WordLabels(grammar int) (GrammarInfo, []string, error) {
	info, err := s.DumpGrammar(grammar)
	if err != nil {
		return info, nil, err
	}
	labels := make([]string, 0, info.Count)
	for i := 0; i < info.Count; i++ {
		label, err := s.NextWordLabel()
		if err != nil {
			return info, labels, err
		}
		labels = append(labels, label)
	}
	return info, labels, nil
}

// TrainCommand starts training a command. The outcome is read after
// HasFinished: success, an error code, or Command/Word when the training
// conflicts.
func (s *Session) TrainCommand(group, index int) error {
	if err := checkCommand(group, index); err != nil {
		return err
	}
	s.sendCommandRef(protocol.CmdTrainSD, group, index)
	if s.txErr != nil {
		return s.txErr
	}
	s.task = TaskTrain
	return nil
}

// RecognizeCommand starts recognition of the custom commands in group.
// The result is read with Command after HasFinished.
func (s *Session) RecognizeCommand(group int) error {
	if err := checkRange("group", group, 0, MaxGroup); err != nil {
		return err
	}
	return s.start(TaskRecognizeCommand, protocol.CmdRecogSD, int8(group))
}

// RecognizeWord starts recognition of the built-in words of a word set or
// a custom grammar. The result is read with Word after HasFinished.
func (s *Session) RecognizeWord(wordset int) error {
	if err := checkRange("wordset", wordset, 0, int(protocol.MaxArg)); err != nil {
		return err
	}
	return s.start(TaskRecognizeWord, protocol.CmdRecogSI, int8(wordset))
}
