package format

import (
    "math"
    "testing"
    "time"
)

func TestReadingTime(t *testing.T) {
    cases := map[int]string{0: "", 1: "1 min read", 200: "1 min read", 201: "2 min read", 950: "5 min read"}
    for in, want := range cases {
        if got := ReadingTime(in); got != want {
            t.Fatalf("ReadingTime(%d) = %q, want %q", in, got, want)
        }
    }
}

func TestPercent(t *testing.T) {
    cases := map[float64]string{0: "0%", 100: "100%", 42.5: "42.5%", 33.3333: "33.33%", 120: "100%", -3: "0%"}
    for in, want := range cases {
        if got := Percent(in); got != want {
            t.Fatalf("Percent(%v) = %q, want %q", in, got, want)
        }
    }
    if got := Percent(math.NaN()); got != "0%" {
        t.Fatalf("Percent(NaN) = %q", got)
    }
}

func TestDates(t *testing.T) {
    d := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
    if got := FmtDate(d); got != "Sep 2, 2024" {
        t.Fatalf("FmtDate = %q", got)
    }
    if got := ISODate(d); got != "2024-09-02" {
        t.Fatalf("ISODate = %q", got)
    }
    if FmtDate(time.Time{}) != "" || ISODate(time.Time{}) != "" {
        t.Fatalf("zero time should format empty")
    }
}
