// Package display prints player-facing game output at a chosen verbosity,
// plus optional timing lines. It is purely observational: nothing it does
// changes what the solver decides.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelNone Level = iota
	LevelSimple
	LevelNormal
	LevelChatty
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelSimple:
		return "simple"
	case LevelNormal:
		return "normal"
	case LevelChatty:
		return "chatty"
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LevelNone, nil
	case "simple":
		return LevelSimple, nil
	case "normal":
		return LevelNormal, nil
	case "chatty":
		return LevelChatty, nil
	}
	return LevelNone, fmt.Errorf("unknown display level %q", s)
}

// Display is safe for concurrent use. A nil *Display discards everything.
type Display struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
	clock *Clock
}

func New(level Level, out io.Writer, withClock bool) *Display {
	d := &Display{level: level, out: out}
	if withClock {
		d.clock = NewClock(out, time.Now)
	}
	return d
}

func (d *Display) Level() Level {
	if d == nil {
		return LevelNone
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.level
}

func (d *Display) SetLevel(l Level) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.level = l
	d.mu.Unlock()
}

// Bare always prints, whatever the level.
func (d *Display) Bare(format string, args ...any) { d.log(LevelNone, "", format, args...) }

func (d *Display) Simple(format string, args ...any) { d.log(LevelSimple, "", format, args...) }

func (d *Display) Normal(format string, args ...any) { d.log(LevelNormal, "[_] ", format, args...) }

func (d *Display) Chatty(format string, args ...any) { d.log(LevelChatty, "[H] ", format, args...) }

// IsChatty lets callers skip building expensive messages.
func (d *Display) IsChatty() bool {
	return d.Level() >= LevelChatty
}

func (d *Display) log(l Level, prefix, format string, args ...any) {
	if d == nil || d.out == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.level < l {
		return
	}
	fmt.Fprintf(d.out, prefix+format+"\n", args...)
}

// Clock prints a timing line when the clock is enabled.
func (d *Display) Clock(msg string) {
	if d == nil || d.clock == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock.Timer(msg)
}

// Clock tracks elapsed milliseconds since creation and since the last call.
type Clock struct {
	out     io.Writer
	now     func() time.Time
	start   time.Time
	last    time.Time
	counter int
}

func NewClock(out io.Writer, now func() time.Time) *Clock {
	return &Clock{out: out, now: now, start: now(), counter: 1}
}

// Timer prints [CLK][counter][now] on the first call and
// [CLK][counter][now][since start][since last] afterwards, in milliseconds.
func (c *Clock) Timer(msg string) {
	now := c.now()
	if c.last.IsZero() {
		fmt.Fprintf(c.out, "[CLK][%d][%d] %s\n", c.counter, now.UnixMilli(), msg)
	} else {
		fmt.Fprintf(c.out, "[CLK][%d][%d][%d][%d] %s\n", c.counter, now.UnixMilli(),
			now.Sub(c.start).Milliseconds(), now.Sub(c.last).Milliseconds(), msg)
	}
	c.counter++
	c.last = now
}
