package seo

import (
    "encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
    b, err := json.Marshal(v)
    if err != nil {
        return ""
    }
    return string(b)
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "WebSite",
        "name":     name,
    }
    if url != "" { m["url"] = url }
    return m
}

// Article returns a minimal Article schema payload.
func Article(headline, description, url, authorName, dateModified string) map[string]any {
    m := map[string]any{
        "@context":      "https://schema.org",
        "@type":         "Article",
        "headline":      headline,
    }
    if description != "" { m["description"] = description }
    if url != "" { m["url"] = url }
    if authorName != "" { m["author"] = map[string]any{"@type": "Person", "name": authorName} }
    if dateModified != "" { m["dateModified"] = dateModified }
    return m
}

// HowToStep maps one stage of a HowTo.
type HowToStep struct {
    Name string
    Text string
    URL  string
}

// HowTo builds a schema.org HowTo with ordered steps.
func HowTo(name, description string, steps []HowToStep) map[string]any {
    el := make([]map[string]any, 0, len(steps))
    for i, s := range steps {
        item := map[string]any{
            "@type":    "HowToStep",
            "position": i + 1,
            "name":     s.Name,
            "text":     s.Text,
        }
        if s.URL != "" { item["url"] = s.URL }
        el = append(el, item)
    }
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "HowTo",
        "name":     name,
        "step":     el,
    }
    if description != "" { m["description"] = description }
    return m
}
