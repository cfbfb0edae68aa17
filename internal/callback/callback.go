// Package callback is a reference to an intent owned by another process.
//
// The token identifies the reference across processes; the intent is the
// describable target.
package callback

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	ErrNullCallback = errors.New("callback: null reference")
	ErrEmptyIntent  = errors.New("callback: intent requires action or component")
)

// MarshalObserver is told about every callback written as a return value.
type MarshalObserver func(token uuid.UUID, target Intent)

var observer atomic.Pointer[MarshalObserver]

// SetMarshalObserver installs fn. Call once during startup; nil clears it.
func SetMarshalObserver(fn MarshalObserver) {
	if fn == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&fn)
}

// Callback is immutable.
type Callback struct {
	token  uuid.UUID
	target Intent
}

// New issues a fresh token for target.
func New(target Intent) (*Callback, error) {
	return FromToken(uuid.New(), target)
}

// FromToken binds an existing token to target.
func FromToken(token uuid.UUID, target Intent) (*Callback, error) {
	if token == uuid.Nil {
		return nil, ErrNullCallback
	}
	if target.empty() {
		return nil, ErrEmptyIntent
	}
	return &Callback{token: token, target: target.clone()}, nil
}

// Validate reports whether c refers to anything.
func (c *Callback) Validate() error {
	if c.token == uuid.Nil {
		return ErrNullCallback
	}
	if c.target.empty() {
		return ErrEmptyIntent
	}
	return nil
}

func (c *Callback) Token() uuid.UUID {
	return c.token
}

// Target returns a copy of the intent run on invocation.
func (c *Callback) Target() Intent {
	return c.target.clone()
}

func (c *Callback) Equal(other *Callback) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.token == other.token && c.target.Equal(other.target)
}

func (c *Callback) String() string {
	return fmt.Sprintf("Callback{%s: %s}", c.token, c.target)
}
