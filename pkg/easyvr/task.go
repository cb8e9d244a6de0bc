package easyvr

// Task is an asynchronous operation running on the module.
type Task int

// Tasks.
const (
	TaskNone Task = iota
	TaskTrain
	TaskRecognizeCommand
	TaskRecognizeWord
	TaskPlaySound
	TaskDetectToken
	TaskSendToken
	TaskRecordMessage
	TaskPlayMessage
	TaskEraseMessage
	TaskVerifyCommand
	TaskReset
	TaskFixMessages
)

var taskNames = [...]string{
	TaskNone:             "none",
	TaskTrain:            "train",
	TaskRecognizeCommand: "recognize-command",
	TaskRecognizeWord:    "recognize-word",
	TaskPlaySound:        "play-sound",
	TaskDetectToken:      "detect-token",
	TaskSendToken:        "send-token",
	TaskRecordMessage:    "record-message",
	TaskPlayMessage:      "play-message",
	TaskEraseMessage:     "erase-message",
	TaskVerifyCommand:    "verify-command",
	TaskReset:            "reset",
	TaskFixMessages:      "fix-messages",
}

// String implements fmt.Stringer.
func (t Task) String() string {
	if t < 0 || int(t) >= len(taskNames) {
		return "unknown"
	}
	return taskNames[t]
}
