// Package session holds the per-run selection shared between the menus and
// the tracing screen.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Context is created when a run starts and cleared when it ends. It is
// passed explicitly to whoever needs the selection.
type Context struct {
	ID        uuid.UUID
	Category  string
	SetName   string
	Exercise  string
	StartedAt time.Time
}

// New starts a session for a set.
func New(category, setName string) *Context {
	return &Context{
		ID:        uuid.New(),
		Category:  category,
		SetName:   setName,
		StartedAt: time.Now(),
	}
}

// Select records the exercise picked to start from.
func (c *Context) Select(exercise string) {
	if c == nil {
		return
	}
	c.Exercise = exercise
}

// Selected returns the picked exercise, if any.
func (c *Context) Selected() (string, bool) {
	if c == nil || c.Exercise == "" {
		return "", false
	}
	return c.Exercise, true
}

// UseSet switches the session to another set and forgets the exercise.
func (c *Context) UseSet(category, setName string) {
	if c == nil {
		return
	}
	c.Category = category
	c.SetName = setName
	c.Exercise = ""
}

// Clear forgets the selection. The ID stays for log correlation.
func (c *Context) Clear() {
	if c == nil {
		return
	}
	c.Category = ""
	c.SetName = ""
	c.Exercise = ""
}
