// Package export writes the guide as a static site that can be hosted under
// a sub-path, e.g. GitHub Pages at /<repo>/.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mkdugri-blog/Linux-boot/internal/anchors"
	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/handlers"
	"github.com/mkdugri-blog/Linux-boot/internal/site"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

// Options controls an export run.
type Options struct {
	OutDir string
	// Public is the static asset tree; files under it are copied verbatim.
	Public   fs.FS
	Reporter Reporter
	Logger   *zap.Logger
}

// Result lists the files written, relative to OutDir, in write order.
type Result struct {
	Files []string
	Bytes int64
}

type job struct {
	name  string
	write func() ([]byte, error)
	html  bool
}

// Export renders every page of s into opts.OutDir. Each HTML page is parsed
// and its in-page links checked; a link without a target aborts the export.
func Export(ctx context.Context, s *site.Site, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("export: output directory is required")
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	jobs, err := plan(s, opts.Public)
	if err != nil {
		return nil, err
	}

	res := &Result{Files: make([]string, 0, len(jobs))}
	opts.Reporter.Planned(len(jobs))
	defer func() { opts.Reporter.Done(res) }()

	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		body, err := j.write()
		if err != nil {
			return res, fmt.Errorf("export %s: %w", j.name, err)
		}
		if j.html {
			doc, err := anchors.Parse(bytes.NewReader(body))
			if err != nil {
				return res, fmt.Errorf("export %s: %w", j.name, err)
			}
			if err := doc.Verify(); err != nil {
				return res, fmt.Errorf("export %s: %w", j.name, err)
			}
		}
		if err := writeFile(opts.OutDir, j.name, body); err != nil {
			return res, err
		}
		res.Files = append(res.Files, j.name)
		res.Bytes += int64(len(body))
		opts.Reporter.Wrote(i+1, File{Name: j.name, Bytes: len(body)})
		opts.Logger.Debug("exported file", zap.String("file", j.name), zap.Int("bytes", len(body)))
	}
	opts.Logger.Info("export complete",
		zap.String("out_dir", opts.OutDir),
		zap.String("base_path", s.BasePath()),
		zap.Int("files", len(res.Files)),
		zap.Int64("bytes", res.Bytes))
	return res, nil
}

func plan(s *site.Site, public fs.FS) ([]job, error) {
	jobs := []job{
		{name: "index.html", html: true, write: func() ([]byte, error) {
			return renderHome(s, viewstate.State{})
		}},
	}
	for _, id := range boot.IDs() {
		st := viewstate.State{ActiveStep: id}
		jobs = append(jobs, job{
			name: path.Join("steps", string(id), "index.html"),
			html: true,
			write: func() ([]byte, error) {
				return renderHome(s, st)
			},
		})
	}
	jobs = append(jobs,
		job{name: "404.html", html: true, write: func() ([]byte, error) {
			var buf bytes.Buffer
			err := s.RenderNotFound(&buf, true)
			return buf.Bytes(), err
		}},
		job{name: "steps.json", write: func() ([]byte, error) {
			return json.MarshalIndent(handlers.StepRecords(), "", "  ")
		}},
		job{name: "assets/css/highlight.css", write: func() ([]byte, error) {
			css, err := content.HighlightCSS()
			return []byte(css), err
		}},
		job{name: ".nojekyll", write: func() ([]byte, error) { return nil, nil }},
	)

	if public != nil {
		err := fs.WalkDir(public, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			jobs = append(jobs, job{name: p, write: func() ([]byte, error) {
				return fs.ReadFile(public, p)
			}})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("export: walk public assets: %w", err)
		}
	}
	return jobs, nil
}

func renderHome(s *site.Site, st viewstate.State) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.RenderHome(&buf, st, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(root, name string, body []byte) error {
	dst := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("export: create dir for %s: %w", name, err)
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	return nil
}
