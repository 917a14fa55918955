package viewstate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
)

// ErrUnknownEvent is returned by Apply for event types the controller does not handle.
var ErrUnknownEvent = errors.New("viewstate: unknown event")

// Block is the vertical alignment requested for a scroll-into-view effect.
type Block string

const (
	BlockStart  Block = "start"
	BlockCenter Block = "center"
)

// Effect is a side effect requested by the controller for the rendering layer.
type Effect struct {
	Kind   string `json:"kind"` // always "scroll"
	Target string `json:"target"`
	Block  Block  `json:"block"`
	Smooth bool   `json:"smooth"`
}

// Resolver reports whether an element with the given id exists on the page.
type Resolver interface {
	HasElement(id string) bool
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) bool

// HasElement implements Resolver.
func (f ResolverFunc) HasElement(id string) bool { return f(id) }

// Option configures a Controller.
type Option func(*Controller)

// WithResolver sets the resolver used for in-page anchor navigation.
func WithResolver(r Resolver) Option {
	return func(c *Controller) { c.resolver = r }
}

// WithState restores a previously captured state. Progress is re-clamped and
// a step id missing from the table is dropped.
func WithState(s State) Option {
	return func(c *Controller) {
		if !boot.Valid(s.ActiveStep) {
			s.ActiveStep = ""
		}
		if s.ScrollProgress < 0 || s.ScrollProgress > 100 || !finite(s.ScrollProgress) {
			s.ScrollProgress = Progress(s.ScrollProgress, 100)
		}
		c.state = s
	}
}

// Controller owns one State and translates input events into mutations.
// A Controller is not safe for concurrent use; a single goroutine (the page's
// event loop) must own it.
type Controller struct {
	state     State
	resolver  Resolver
	effects   []Effect
	observers []*observer
	nextID    int
}

type observer struct {
	id int
	fn func(State)
}

// New returns a controller in the initial page-load state.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State { return c.state }

// Detail returns the detail panel for the current state.
func (c *Controller) Detail() Detail { return DetailFor(c.state) }

// Lookup returns the record for id without touching state.
func (c *Controller) Lookup(id boot.StepID) (boot.Step, bool) { return boot.Lookup(id) }

// SelectStep marks id as the active step and asks the page to bring the
// detail panel into view. An id missing from the table clears the selection,
// so the panel shows the placeholder; the result reports whether id was found.
func (c *Controller) SelectStep(id boot.StepID) bool {
	ok := boot.Valid(id)
	if ok {
		c.state.ActiveStep = id
	} else {
		c.state.ActiveStep = ""
	}
	c.effects = append(c.effects, Effect{Kind: "scroll", Target: DetailsElementID, Block: BlockCenter, Smooth: true})
	c.notify()
	return ok
}

// ToggleMenu flips the mobile menu flag.
func (c *Controller) ToggleMenu() {
	c.state.MenuOpen = !c.state.MenuOpen
	c.notify()
}

// CloseMenu forces the mobile menu closed.
func (c *Controller) CloseMenu() {
	if !c.state.MenuOpen {
		return
	}
	c.state.MenuOpen = false
	c.notify()
}

// OnScroll records the scroll position and returns the resulting progress.
func (c *Controller) OnScroll(scrollTop, scrollableHeight float64) float64 {
	p := Progress(scrollTop, scrollableHeight)
	if p != c.state.ScrollProgress {
		c.state.ScrollProgress = p
		c.notify()
	}
	return p
}

// Navigate handles an in-page link. Only hrefs beginning with '#' whose target
// exists are handled: the page scrolls to the target and the menu closes.
func (c *Controller) Navigate(href string) bool {
	if !strings.HasPrefix(href, "#") {
		return false
	}
	id := strings.TrimPrefix(href, "#")
	if id == "" || c.resolver == nil || !c.resolver.HasElement(id) {
		return false
	}
	c.effects = append(c.effects, Effect{Kind: "scroll", Target: id, Block: BlockStart, Smooth: true})
	c.state.MenuOpen = false
	c.notify()
	return true
}

// Effects returns and clears the pending side effects.
func (c *Controller) Effects() []Effect {
	out := c.effects
	c.effects = nil
	return out
}

// Subscribe registers fn to run after every mutation. The returned function
// releases the subscription and may be called more than once.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.nextID++
	o := &observer{id: c.nextID, fn: fn}
	c.observers = append(c.observers, o)
	return func() {
		for i, cur := range c.observers {
			if cur.id == o.id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (c *Controller) Subscribers() int { return len(c.observers) }

func (c *Controller) notify() {
	s := c.state
	for _, o := range append([]*observer(nil), c.observers...) {
		o.fn(s)
	}
}

// EventType names an input event accepted by Apply.
type EventType string

const (
	EventSelect   EventType = "select"
	EventMenu     EventType = "menu"
	EventScroll   EventType = "scroll"
	EventNavigate EventType = "navigate"
)

// Event is the wire form of a page input event.
type Event struct {
	Type         EventType   `json:"type"`
	Step         boot.StepID `json:"step,omitempty"`
	ScrollTop    float64     `json:"scrollTop,omitempty"`
	ScrollHeight float64     `json:"scrollHeight,omitempty"`
	Href         string      `json:"href,omitempty"`
}

// Apply dispatches ev to the matching operation.
func (c *Controller) Apply(ev Event) error {
	switch ev.Type {
	case EventSelect:
		c.SelectStep(boot.Normalize(string(ev.Step)))
	case EventMenu:
		c.ToggleMenu()
	case EventScroll:
		c.OnScroll(ev.ScrollTop, ev.ScrollHeight)
	case EventNavigate:
		c.Navigate(ev.Href)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}
