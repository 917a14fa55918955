package handlers

import "github.com/mkdugri-blog/Linux-boot/internal/boot"

// StepJSON is the wire form of a boot stage.
type StepJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Label   string `json:"label"`
	Caption string `json:"caption"`
}

// StepRecord converts a step to its wire form.
func StepRecord(s boot.Step) StepJSON {
	return StepJSON{
		ID:      string(s.ID),
		Title:   s.Title,
		Content: s.Content,
		Label:   s.Label,
		Caption: s.Caption,
	}
}

// StepRecords returns the whole table in display order.
func StepRecords() []StepJSON {
	all := boot.All()
	out := make([]StepJSON, 0, len(all))
	for _, s := range all {
		out = append(out, StepRecord(s))
	}
	return out
}
