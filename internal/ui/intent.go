package ui

import "fmt"

// Tag identifies the kind of an intent. Routers are keyed by tag.
type Tag string

// Intent is a request a node cannot satisfy locally.
type Intent interface {
	Tag() Tag
}

const (
	TagQuit       Tag = "quit"
	TagPushPage   Tag = "push-page"
	TagPopPage    Tag = "pop-page"
	TagPushDialog Tag = "push-dialog"
	TagPopDialog  Tag = "pop-dialog"
	TagNotify     Tag = "notify"
	TagCopyText   Tag = "copy-text"
)

// Quit asks the application to exit.
type Quit struct{}

func (Quit) Tag() Tag { return TagQuit }

// PushPage opens a page on top of the current one.
type PushPage struct {
	Page Node
}

func (PushPage) Tag() Tag { return TagPushPage }

// PopPage closes the current page.
type PopPage struct{}

func (PopPage) Tag() Tag { return TagPopPage }

// PushDialog opens a dialog over the nearest page.
type PushDialog struct {
	Dialog Node
}

func (PushDialog) Tag() Tag { return TagPushDialog }

// PopDialog closes the topmost dialog of the nearest page.
type PopDialog struct{}

func (PopDialog) Tag() Tag { return TagPopDialog }

// Level grades a Notify message.
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notify shows a message in the status line.
type Notify struct {
	Level   Level
	Message string
}

func (Notify) Tag() Tag { return TagNotify }

// Info builds an info notification.
func Info(format string, args ...any) Notify {
	return Notify{Level: LevelInfo, Message: fmt.Sprintf(format, args...)}
}

// Failure builds an error notification from err.
func Failure(err error) Notify {
	return Notify{Level: LevelError, Message: err.Error()}
}

// CopyText puts text on the system clipboard.
type CopyText struct {
	Text string
}

func (CopyText) Tag() Tag { return TagCopyText }

// Tags lists the tags of intents in order.
func Tags(intents []Intent) []Tag {
	out := make([]Tag, len(intents))
	for i, it := range intents {
		out[i] = it.Tag()
	}
	return out
}
