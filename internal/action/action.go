package action

import (
	"github.com/danmuck/actionwire/internal/callback"
	"github.com/danmuck/actionwire/internal/icon"
	"github.com/danmuck/actionwire/internal/text"
)

// Field names used in errors and diagnostics.
const (
	FieldIcon        = "icon"
	FieldTitle       = "title"
	FieldDescription = "contentDescription"
	FieldCallback    = "callback"
)

// Action is an invocable remote action with its visual affordance.
// All four parts are always present and never change.
type Action struct {
	icon        *icon.Icon
	title       *text.Text
	description *text.Text
	callback    *callback.Callback
}

// New validates and bundles the four parts.
func New(ic *icon.Icon, title, description *text.Text, cb *callback.Callback) (*Action, error) {
	switch {
	case ic == nil:
		return nil, missing(FieldIcon)
	case title == nil:
		return nil, missing(FieldTitle)
	case description == nil:
		return nil, missing(FieldDescription)
	case cb == nil:
		return nil, missing(FieldCallback)
	}
	if err := ic.Validate(); err != nil {
		return nil, invalid(FieldIcon, err)
	}
	if err := cb.Validate(); err != nil {
		return nil, invalid(FieldCallback, err)
	}
	return &Action{icon: ic, title: title, description: description, callback: cb}, nil
}

// Icon returns the icon representing the action.
func (a *Action) Icon() *icon.Icon {
	return a.icon
}

// Title returns the title representing the action.
func (a *Action) Title() *text.Text {
	return a.title
}

// Description returns the content description representing the action.
func (a *Action) Description() *text.Text {
	return a.description
}

// Callback returns the reference invoked when the action is triggered.
func (a *Action) Callback() *callback.Callback {
	return a.callback
}

// Clone returns a new Action sharing the same parts.
func (a *Action) Clone() *Action {
	cp := *a
	return &cp
}

// WithIcon returns a copy of a showing ic.
func (a *Action) WithIcon(ic *icon.Icon) (*Action, error) {
	return New(ic, a.title, a.description, a.callback)
}

// WithTitle returns a copy of a with a new title.
func (a *Action) WithTitle(title *text.Text) (*Action, error) {
	return New(a.icon, title, a.description, a.callback)
}

// WithDescription returns a copy of a with a new content description.
func (a *Action) WithDescription(description *text.Text) (*Action, error) {
	return New(a.icon, a.title, description, a.callback)
}

// WithCallback returns a copy of a invoking cb.
func (a *Action) WithCallback(cb *callback.Callback) (*Action, error) {
	return New(a.icon, a.title, a.description, cb)
}

// Equal compares the parts by value.
func (a *Action) Equal(other *Action) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.icon.Equal(other.icon) &&
		a.title.Equal(other.title) &&
		a.description.Equal(other.description) &&
		a.callback.Equal(other.callback)
}
