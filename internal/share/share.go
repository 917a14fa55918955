// Package share decides how the "Share Article" action is carried out on the
// visitor's platform: the native share sheet when it exists, otherwise a
// clipboard copy with an acknowledgement.
package share

import "strings"

const (
	DefaultTitle = "Linux Boot Process Explained"
	DefaultText  = "Learn about the Linux boot process from power button to desktop"

	CopiedAck = "URL copied to clipboard!"
	ManualAck = "Copy this link to share the article:"
)

// Method is the share mechanism chosen for a request.
type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
	MethodManual    Method = "manual"
)

// Payload is what gets shared.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Capabilities describes what the visitor's platform offers at call time.
type Capabilities struct {
	NativeShare bool
	Clipboard   bool
}

// Outcome is the resolved plan. Ack is empty for native shares, which
// provide their own UI.
type Outcome struct {
	Method  Method  `json:"method"`
	Payload Payload `json:"payload"`
	Ack     string  `json:"ack,omitempty"`
}

// NewPayload fills blank title/text with the article defaults.
func NewPayload(title, text, url string) Payload {
	p := Payload{
		Title: strings.TrimSpace(title),
		Text:  strings.TrimSpace(text),
		URL:   strings.TrimSpace(url),
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Text == "" {
		p.Text = DefaultText
	}
	return p
}

// Plan picks the share method. It never fails: without native share or a
// clipboard the URL is surfaced for a manual copy.
func Plan(p Payload, caps Capabilities) Outcome {
	switch {
	case caps.NativeShare:
		return Outcome{Method: MethodNative, Payload: p}
	case caps.Clipboard:
		return Outcome{Method: MethodClipboard, Payload: p, Ack: CopiedAck}
	default:
		return Outcome{Method: MethodManual, Payload: p, Ack: ManualAck}
	}
}

// ParseFlag reads a capability flag from a query/form value.
func ParseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
