package dxf

import "fmt"

// NotificationLevel grades a Notification.
type NotificationLevel uint8

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
)

func (l NotificationLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// Notification reports a data-shape problem that did not stop the writer or
// reader: an unknown group code, an object skipped by a collection writer, a
// handle that could not be resolved.
type Notification struct {
	Level   NotificationLevel
	Message string
	Err     error
}

func (n Notification) String() string {
	if n.Err != nil {
		return fmt.Sprintf("%s: %s: %v", n.Level, n.Message, n.Err)
	}
	return fmt.Sprintf("%s: %s", n.Level, n.Message)
}

// NotificationHandler receives every notification raised during a read or a
// write.
type NotificationHandler func(Notification)

// notifier delivers notifications to the configured handler and logger.
type notifier struct {
	cfg *Config
}

// warn reports a warning. Under Config.Strict it returns an error wrapping
// ErrStrict that the caller must propagate.
func (n notifier) warn(msg string, err error) error {
	return n.raise(Notification{Level: LevelWarning, Message: msg, Err: err})
}

func (n notifier) info(msg string) {
	_ = n.raise(Notification{Level: LevelInfo, Message: msg})
}

func (n notifier) raise(note Notification) error {
	if n.cfg.Notify != nil {
		n.cfg.Notify(note)
	}
	switch note.Level {
	case LevelInfo:
		n.cfg.Logger.Debug(note.Message)
	default:
		if note.Err != nil {
			n.cfg.Logger.Warn(note.Message, "error", note.Err.Error())
		} else {
			n.cfg.Logger.Warn(note.Message)
		}
	}
	if n.cfg.Strict && note.Level >= LevelWarning {
		if note.Err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStrict, note.Message, note.Err)
		}
		return fmt.Errorf("%w: %s", ErrStrict, note.Message)
	}
	return nil
}
