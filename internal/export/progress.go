package export

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// File is one file written by an export run.
type File struct {
	Name  string
	Bytes int
}

// Reporter follows an export run: the planned file count, every file as it
// lands on disk, and the final result.
type Reporter interface {
	Planned(files int)
	Wrote(n int, f File)
	Done(res *Result)
}

// NewReporter draws a progress bar on w, or plain log lines when running
// under CI where redraws would flood the log.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &BarReporter{w: w}
}

// BarReporter advances a progressbar per written file.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Planned(files int) {
	r.bar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("export"),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Wrote(n int, f File) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("%-32s %8s", f.Name, byteSize(f.Bytes)))
	_ = r.bar.Set(n)
}

func (r *BarReporter) Done(*Result) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter logs one line per written file.
type LineReporter struct {
	w     io.Writer
	files int
}

func (r *LineReporter) Planned(files int) {
	r.files = files
	fmt.Fprintf(r.w, "export: %d files planned\n", files)
}

func (r *LineReporter) Wrote(n int, f File) {
	fmt.Fprintf(r.w, "export: [%d/%d] %s (%s)\n", n, r.files, f.Name, byteSize(f.Bytes))
}

func (r *LineReporter) Done(res *Result) {
	fmt.Fprintf(r.w, "export: wrote %d files, %s\n", len(res.Files), byteSize(int(res.Bytes)))
}

func byteSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/1024)
}

type nopReporter struct{}

func (nopReporter) Planned(int)     {}
func (nopReporter) Wrote(int, File) {}
func (nopReporter) Done(*Result)    {}
