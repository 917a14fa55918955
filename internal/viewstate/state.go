// Package viewstate holds the ephemeral UI state of the boot guide page and the
// controller that mutates it in response to step clicks, menu toggles, scroll
// positions and in-page anchor navigation.
package viewstate

import (
	"math"
	"net/url"
	"strings"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
)

// DetailsElementID is the element the page scrolls to after a step is selected.
const DetailsElementID = "stepDetails"

// Placeholder copy shown in the detail panel when nothing (or an unknown step) is selected.
const (
	PlaceholderTitle   = "Click on any step above to learn more"
	PlaceholderContent = "Explore each stage of the Linux boot process in detail"
)

// State is the complete ephemeral UI state of the page. The zero value is the
// state at page load: no step selected, menu closed, progress 0.
type State struct {
	ActiveStep     boot.StepID `json:"activeStep,omitempty"`
	MenuOpen       bool        `json:"menuOpen"`
	ScrollProgress float64     `json:"scrollProgress"`
}

// HasActiveStep reports whether any step identifier has been selected.
func (s State) HasActiveStep() bool { return s.ActiveStep != "" }

// IsActive reports whether id is the selected step.
func (s State) IsActive(id boot.StepID) bool { return s.ActiveStep != "" && s.ActiveStep == id }

// Query encodes the durable part of the state (step and menu) for links.
// Scroll progress is positional and never encoded.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.ActiveStep != "" {
		v.Set("step", string(s.ActiveStep))
	}
	if s.MenuOpen {
		v.Set("menu", "1")
	}
	return v
}

// FromQuery decodes a state produced by Query. A step id that is not in the
// table decodes as no selection.
func FromQuery(v url.Values) State {
	var s State
	if id := boot.Normalize(v.Get("step")); boot.Valid(id) {
		s.ActiveStep = id
	}
	switch strings.ToLower(strings.TrimSpace(v.Get("menu"))) {
	case "1", "true", "open", "on":
		s.MenuOpen = true
	}
	return s
}

// Progress converts a scroll position into a percentage in [0, 100].
// Degenerate geometry (no scrollable height, NaN or infinite inputs) yields 0.
func Progress(scrollTop, scrollableHeight float64) float64 {
	if !finite(scrollTop) || !finite(scrollableHeight) || scrollableHeight <= 0 {
		return 0
	}
	p := scrollTop / scrollableHeight * 100
	switch {
	case !finite(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Detail is the view model of the detail panel.
type Detail struct {
	Step        boot.Step
	Title       string
	Content     string
	Placeholder bool
}

// DetailFor resolves the detail panel for the given state. States built by
// hand may carry an id outside the table; those get the placeholder too.
func DetailFor(s State) Detail {
	step, ok := boot.Lookup(s.ActiveStep)
	if !ok {
		return Detail{Title: PlaceholderTitle, Content: PlaceholderContent, Placeholder: true}
	}
	return Detail{Step: step, Title: step.Title, Content: step.Content}
}
