package share

import "testing"

func TestPlanPrefersNativeShare(t *testing.T) {
	p := NewPayload("", "", "https://example.com/linux-boot/")
	got := Plan(p, Capabilities{NativeShare: true, Clipboard: true})
	if got.Method != MethodNative {
		t.Fatalf("expected native, got %s", got.Method)
	}
	if got.Ack != "" {
		t.Fatalf("native share should not carry an acknowledgement, got %q", got.Ack)
	}
	if got.Payload.Title != DefaultTitle || got.Payload.Text != DefaultText {
		t.Fatalf("expected default title/text, got %+v", got.Payload)
	}
}

func TestPlanFallsBackToClipboard(t *testing.T) {
	p := NewPayload("Custom", "", "https://example.com/?step=6")
	got := Plan(p, Capabilities{Clipboard: true})
	if got.Method != MethodClipboard {
		t.Fatalf("expected clipboard, got %s", got.Method)
	}
	if got.Ack != CopiedAck {
		t.Fatalf("expected %q, got %q", CopiedAck, got.Ack)
	}
	if got.Payload.URL != "https://example.com/?step=6" || got.Payload.Title != "Custom" {
		t.Fatalf("unexpected payload %+v", got.Payload)
	}
}

func TestPlanManualWhenNothingAvailable(t *testing.T) {
	got := Plan(NewPayload("", "", "https://example.com/"), Capabilities{})
	if got.Method != MethodManual || got.Ack != ManualAck {
		t.Fatalf("unexpected outcome %+v", got)
	}
}

func TestParseFlag(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "true": true, " On ": true, "0": false, "": false, "no": false} {
		if got := ParseFlag(in); got != want {
			t.Fatalf("ParseFlag(%q) = %v, want %v", in, got, want)
		}
	}
}
