package report

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/pagepulse/pagepulse/internal/domain/urlkey"
	"github.com/pagepulse/pagepulse/pkg/logger"
)

// File permissions for rendered reports.
const (
	reportFilePermission = 0o644
	reportDirPermission  = 0o755
)

// HTMLOption applies a configuration option to the HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithHTMLLogger sets a custom logger for the renderer.
func WithHTMLLogger(log logger.Logger) HTMLOption {
	return func(r *HTMLRenderer) {
		if log != nil {
			r.log = log
		}
	}
}

// HTMLRenderer writes one HTML page per URL plus an index page into a
// directory, from templates embedded in the binary.
type HTMLRenderer struct {
	dir  string
	tmpl *template.Template
	log  logger.Logger
}

// indexData is the template input for the index page.
type indexData struct {
	RunID       string
	GeneratedAt time.Time
	Pages       []Page
}

// NewHTMLRenderer creates a renderer writing into dir.
func NewHTMLRenderer(dir string, opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{
		dir: dir,
		tmpl: template.Must(template.New("report").Funcs(template.FuncMap{
			"deltaSign":  deltaSign,
			"deltaClass": deltaClass,
			"pageFile":   pageFile,
		}).ParseFS(templateFS, "templates/*.tmpl")),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get()
	}
	return r
}

// Render writes the report page for one URL to <dir>/<key>.html.
func (r *HTMLRenderer) Render(ctx context.Context, page Page) error {
	if err := os.MkdirAll(r.dir, reportDirPermission); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(r.dir, pageFile(page.Snapshot.URL))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFilePermission)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := r.tmpl.ExecuteTemplate(f, "report.html.tmpl", page); err != nil {
		return fmt.Errorf("render report for %s: %w", page.Snapshot.URL, err)
	}

	r.log.Debug(ctx, "report rendered",
		logger.String("url", page.Snapshot.URL),
		logger.String("path", path),
	)
	return nil
}

// RenderIndex writes <dir>/index.html summarizing the whole run.
func (r *HTMLRenderer) RenderIndex(ctx context.Context, runID string, pages []Page) error {
	if err := os.MkdirAll(r.dir, reportDirPermission); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(r.dir, "index.html")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFilePermission)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data := indexData{RunID: runID, GeneratedAt: time.Now(), Pages: pages}
	if err := r.tmpl.ExecuteTemplate(f, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	r.log.Info(ctx, "index rendered",
		logger.String("path", path),
		logger.Int("pages", len(pages)),
	)
	return nil
}

// pageFile names the report file for a URL.
func pageFile(url string) string {
	return urlkey.Key(url) + ".html"
}

// deltaSign formats a delta with an explicit sign: +5, -3, 0.
func deltaSign(d int) string {
	if d > 0 {
		return fmt.Sprintf("+%d", d)
	}
	return fmt.Sprintf("%d", d)
}

// deltaClass maps a delta to its CSS class.
func deltaClass(d int) string {
	switch {
	case d > 0:
		return "up"
	case d < 0:
		return "down"
	default:
		return "flat"
	}
}
