package seo

import (
    "encoding/json"
    "testing"
)

func TestHowToPositions(t *testing.T) {
    m := HowTo("Boot", "", []HowToStep{{Name: "Power On", Text: "a"}, {Name: "Firmware", Text: "b", URL: "/?step=2"}})
    raw := JSON(m)
    var decoded struct {
        Type string `json:"@type"`
        Step []struct {
            Position int    `json:"position"`
            Name     string `json:"name"`
            URL      string `json:"url"`
        } `json:"step"`
    }
    if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if decoded.Type != "HowTo" || len(decoded.Step) != 2 {
        t.Fatalf("unexpected payload %s", raw)
    }
    if decoded.Step[1].Position != 2 || decoded.Step[1].URL != "/?step=2" || decoded.Step[0].URL != "" {
        t.Fatalf("unexpected steps %s", raw)
    }
}

func TestJSONUnsupported(t *testing.T) {
    if got := JSON(map[string]any{"ch": make(chan int)}); got != "" {
        t.Fatalf("expected empty string, got %q", got)
    }
}

func TestAbsoluteURL(t *testing.T) {
    if got := AbsoluteURL("https://example.github.io/", "/linux-boot/"); got != "https://example.github.io/linux-boot/" {
        t.Fatalf("unexpected %q", got)
    }
    if got := AbsoluteURL("", "/linux-boot/"); got != "/linux-boot/" {
        t.Fatalf("unexpected %q", got)
    }
}
