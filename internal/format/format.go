package format

import (
    "fmt"
    "math"
    "strconv"
    "time"
)

// wordsPerMinute is the reading speed used for estimates.
const wordsPerMinute = 200

// FmtDate formats t in the short form used in the footer, e.g. "Sep 2, 2024".
func FmtDate(t time.Time) string {
    if t.IsZero() {
        return ""
    }
    return t.Format("Jan 2, 2006")
}

// ISODate formats t as YYYY-MM-DD for machine-readable attributes.
func ISODate(t time.Time) string {
    if t.IsZero() {
        return ""
    }
    return t.Format("2006-01-02")
}

// ReadingTime renders an estimate like "4 min read". Anything shorter than a minute rounds up.
func ReadingTime(words int) string {
    if words <= 0 {
        return ""
    }
    mins := int(math.Ceil(float64(words) / wordsPerMinute))
    return fmt.Sprintf("%d min read", mins)
}

// Percent formats a progress value for CSS widths, trimmed to two decimals: "42.5%".
func Percent(p float64) string {
    if math.IsNaN(p) || p < 0 {
        p = 0
    }
    if p > 100 {
        p = 100
    }
    return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64) + "%"
}
