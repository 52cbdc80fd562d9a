// Package interact models the page's small interactive affordances: copy
// chips with transient confirmation, smooth in-page anchor scrolling and the
// back-to-top control.
package interact

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CopiedResetDelay is how long a chip shows its confirmation.
const CopiedResetDelay = 1200 * time.Millisecond

// Clipboard is the write side of the system clipboard. Writes may fail when
// permission is denied or the context is not secure.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// CopyChip copies one value to the clipboard and briefly reports success.
type CopyChip struct {
	label     string
	value     string
	clipboard Clipboard
	clock     Clock
	delay     time.Duration
	logger    *zap.Logger
	onCopied  func(label string)

	mu     sync.Mutex
	copied bool
	timer  Timer
	gen    uint64
	closed bool
}

type ChipOption func(*CopyChip)

func WithClock(c Clock) ChipOption { return func(ch *CopyChip) { ch.clock = c } }

func WithDelay(d time.Duration) ChipOption { return func(ch *CopyChip) { ch.delay = d } }

func WithLogger(l *zap.Logger) ChipOption { return func(ch *CopyChip) { ch.logger = l } }

// WithOnCopied registers a callback run after every successful write.
func WithOnCopied(fn func(label string)) ChipOption {
	return func(ch *CopyChip) { ch.onCopied = fn }
}

func NewCopyChip(label, value string, cb Clipboard, opts ...ChipOption) *CopyChip {
	c := &CopyChip{
		label:     label,
		value:     value,
		clipboard: cb,
		clock:     realClock{},
		delay:     CopiedResetDelay,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CopyChip) Label() string { return c.label }
func (c *CopyChip) Value() string { return c.value }

func (c *CopyChip) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Activate writes the chip's value to the clipboard. A failed write leaves
// the chip untouched; it is logged and never returned. Every successful
// activation restarts the reset timer, so only the last one clears the flag.
func (c *CopyChip) Activate(ctx context.Context) {
	if err := c.clipboard.WriteText(ctx, c.value); err != nil {
		c.logger.Debug("clipboard write failed", zap.String("label", c.label), zap.Error(err))
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.copied = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.delay, func() { c.reset(gen) })
	c.mu.Unlock()

	if c.onCopied != nil {
		c.onCopied(c.label)
	}
}

func (c *CopyChip) reset(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.copied = false
	c.timer = nil
}

// Close cancels a pending reset so nothing fires after teardown.
func (c *CopyChip) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
