// Package progress draws a byte-count progress bar for a single hashing run.
package progress

import (
	"fmt"
	"io"
	"math"
	"time"

	bubbles "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

const (
	// DefaultWidth is the bar width in cells, excluding message and counters.
	DefaultWidth = 40
	// DefaultMessage is shown while bytes are still being consumed.
	DefaultMessage = "Hashing..."

	defaultMinInterval = 150 * time.Millisecond
)

// Option configures a Bar.
type Option func(*Bar)

// WithWidth sets the bar width in cells.
func WithWidth(w int) Option { return func(b *Bar) { b.width = w } }

// WithColorProfile overrides the color profile detected from the writer.
func WithColorProfile(p termenv.Profile) Option {
	return func(b *Bar) { b.renderer.SetColorProfile(p) }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(b *Bar) { b.now = now } }

// WithMinInterval sets the minimum time between redraws.
func WithMinInterval(d time.Duration) Option { return func(b *Bar) { b.minTickGap = d } }

// Bar tracks cumulative bytes against a total fixed at creation and
// redraws a single status line on w.
type Bar struct {
	w          io.Writer
	renderer   *lipgloss.Renderer
	model      bubbles.Model
	width      int
	total      uint64
	pos        uint64
	msg        string
	finished   bool
	now        func() time.Time
	start      time.Time
	lastTick   time.Time
	minTickGap time.Duration
}

// NewBar creates a bar for total bytes. Nothing is drawn until the first Inc
// or FinishWithMessage.
func NewBar(w io.Writer, total uint64, opts ...Option) *Bar {
	if w == nil {
		w = io.Discard
	}
	b := &Bar{
		w:          w,
		renderer:   lipgloss.NewRenderer(w),
		width:      DefaultWidth,
		total:      total,
		msg:        DefaultMessage,
		now:        time.Now,
		minTickGap: defaultMinInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.model = bubbles.New(
		bubbles.WithSolidFill("6"),
		bubbles.WithFillCharacters('=', '-'),
		bubbles.WithoutPercentage(),
		bubbles.WithWidth(b.width),
		bubbles.WithColorProfile(b.renderer.ColorProfile()),
	)
	b.model.EmptyColor = "4"
	b.start = b.now()
	b.lastTick = b.start
	return b
}

// Length returns the total recorded at creation.
func (b *Bar) Length() uint64 { return b.total }

// Position returns the cumulative bytes reported so far.
func (b *Bar) Position() uint64 { return b.pos }

// Message returns the current status message.
func (b *Bar) Message() string { return b.msg }

// Fraction returns progress in [0, 1]. An empty total is already complete.
func (b *Bar) Fraction() float64 {
	if b.total == 0 {
		return 1
	}
	return float64(b.pos) / float64(b.total)
}

// Complete reports whether every expected byte has been reported.
func (b *Bar) Complete() bool { return b.pos >= b.total }

// IsFinished reports whether FinishWithMessage has been called.
func (b *Bar) IsFinished() bool { return b.finished }

// SetMessage replaces the status message.
func (b *Bar) SetMessage(msg string) { b.msg = msg }

// Inc advances the position by n, never past the total. Redraws are
// throttled except when the total is reached.
func (b *Bar) Inc(n uint64) {
	if b.finished {
		return
	}
	if n > b.total-b.pos {
		b.pos = b.total
	} else {
		b.pos += n
	}
	now := b.now()
	if now.Sub(b.lastTick) < b.minTickGap && b.pos < b.total {
		return
	}
	_, _ = io.WriteString(b.w, b.line(now))
	b.lastTick = now
}

// FinishWithMessage fills the bar to its total and draws the final line with
// msg. Later calls do nothing.
func (b *Bar) FinishWithMessage(msg string) {
	if b.finished {
		return
	}
	b.finished = true
	b.pos = b.total
	b.msg = msg
	_, _ = fmt.Fprintln(b.w, b.line(b.now()))
}

func (b *Bar) line(now time.Time) string {
	msg := b.renderer.NewStyle().Bold(true).Render(b.msg)
	return fmt.Sprintf("\r%s [%s] %s/%s (%s)",
		msg, b.barView(),
		humanize.IBytes(b.pos), humanize.IBytes(b.total),
		humanDuration(b.eta(now)))
}

// barView draws filled cells, a '>' head, then empty cells. A full bar has
// no head.
func (b *Bar) barView() string {
	filled := int(math.Floor(float64(b.width) * b.Fraction()))
	if filled >= b.width {
		return b.segment(b.width, 1)
	}
	head := b.renderer.NewStyle().Foreground(lipgloss.Color(b.model.FullColor)).Render(">")
	return b.segment(filled, 1) + head + b.segment(b.width-filled-1, 0)
}

// segment renders width cells of the bubbles bar, all full or all empty.
func (b *Bar) segment(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	m := b.model
	m.Width = width
	return m.ViewAs(percent)
}

func (b *Bar) eta(now time.Time) time.Duration {
	elapsed := now.Sub(b.start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	avg := float64(b.pos) / elapsed.Seconds()
	remaining := b.total - b.pos
	if avg <= 0 || remaining == 0 {
		return 0
	}
	return time.Duration(float64(remaining)/avg) * time.Second
}

func humanDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}
