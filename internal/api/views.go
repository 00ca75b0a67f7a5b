package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/mehutonkka/ohtuvarasto/internal/container"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists the pages rendered inside layout.html.
var pageNames = []string{"index", "new", "view", "edit"}

// views holds one parsed template set per page.
type views struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"num": formatNumber,
}

func loadViews() (*views, error) {
	layout, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		page, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", name, err)
		}
		if _, err := page.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		v.pages[name] = page
	}
	return v, nil
}

// pageData is passed to every page template.
type pageData struct {
	SiteName   string
	Version    string
	Title      string
	Flash      *flash
	Containers []containerView
	Container  containerView
}

// containerView is a registry entry shaped for templates.
type containerView struct {
	ID        int
	Name      string
	Capacity  float64
	Level     float64
	FreeSpace float64
	Percent   float64 // fill level as 0-100 for the gauge
}

func viewOf(e container.Entry) containerView {
	c := e.Container
	var pct float64
	if c.Capacity() > 0 {
		pct = c.Level() / c.Capacity() * 100
	}
	return containerView{
		ID:        e.ID,
		Name:      e.Name,
		Capacity:  c.Capacity(),
		Level:     c.Level(),
		FreeSpace: c.FreeSpace(),
		Percent:   pct,
	}
}

// formatNumber prints a float without a trailing ".0" or exponent noise.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	tmpl, ok := s.views.pages[page]
	if !ok {
		s.logger.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.SiteName = s.siteName
	data.Version = s.version
	data.Flash = popFlash(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("rendering page failed",
			"page", page,
			"error", err,
			"request_id", requestID(r.Context()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	buf.WriteTo(w)
}
