// Package carousel rotates example questions under the query input.
package carousel

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
)

// DefaultInterval is how long each example is shown.
const DefaultInterval = 5 * time.Second

// Carousel cycles through a list of examples on a timer, wrapping at the end.
// Once the user navigates manually it stops rotating for good.
type Carousel struct {
	styles   *styles.Styles
	examples []string
	index    int
	interval time.Duration
	running  bool
	stopped  bool
	seq      int
}

// New creates a carousel over examples.
func New(s *styles.Styles, examples []string) *Carousel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Carousel{
		styles:   s,
		examples: examples,
		interval: DefaultInterval,
	}
}

// SetInterval changes the rotation interval.
func (c *Carousel) SetInterval(d time.Duration) {
	if d > 0 {
		c.interval = d
	}
}

// Start begins rotating. It is a no-op when already running, stopped by the
// user, or when there is nothing to rotate.
func (c *Carousel) Start() tea.Cmd {
	if c.running || c.stopped || len(c.examples) < 2 {
		return nil
	}
	c.running = true
	c.seq++
	return c.tick()
}

// Pause stops the timer without counting as manual navigation.
func (c *Carousel) Pause() {
	c.running = false
	c.seq++
}

func (c *Carousel) tick() tea.Cmd {
	seq := c.seq
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return messages.ExampleTick{Seq: seq}
	})
}

// Update advances on ticks that belong to the current run.
func (c *Carousel) Update(msg tea.Msg) (*Carousel, tea.Cmd) {
	tick, ok := msg.(messages.ExampleTick)
	if !ok || !c.running || tick.Seq != c.seq {
		return c, nil
	}
	c.index = (c.index + 1) % len(c.examples)
	return c, c.tick()
}

// Next shows the following example and stops the rotation.
func (c *Carousel) Next() {
	if len(c.examples) == 0 {
		return
	}
	c.stop()
	c.index = (c.index + 1) % len(c.examples)
}

// Prev shows the preceding example and stops the rotation.
func (c *Carousel) Prev() {
	if len(c.examples) == 0 {
		return
	}
	c.stop()
	c.index = (c.index - 1 + len(c.examples)) % len(c.examples)
}

func (c *Carousel) stop() {
	c.stopped = true
	c.running = false
	c.seq++
}

// Current returns the example on display, or "" when there are none.
func (c *Carousel) Current() string {
	if len(c.examples) == 0 {
		return ""
	}
	return c.examples[c.index]
}

// Index returns the position of the current example.
func (c *Carousel) Index() int {
	return c.index
}

// Running reports whether the timer is active.
func (c *Carousel) Running() bool {
	return c.running
}

// Stopped reports whether the user has taken over navigation.
func (c *Carousel) Stopped() bool {
	return c.stopped
}

// View renders the current example with its position.
func (c *Carousel) View() string {
	if len(c.examples) == 0 {
		return ""
	}
	hint := fmt.Sprintf("Try: %q  (%d/%d, ←/→ browse, tab use)", c.Current(), c.index+1, len(c.examples))
	return c.styles.Example.Render(hint)
}
