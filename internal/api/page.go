package api

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/voss/nbshelf/internal/apperr"
	"github.com/voss/nbshelf/internal/shelf"
)

// BrowsePage serves the shelf browse page: a small HTML shell around the
// generated table of contents. The fragment itself is inserted untouched so
// the markup stays byte-identical to GET /api/toc.
type BrowsePage struct {
	svc *shelf.Service
	tpl *template.Template
}

// NewBrowsePage creates the browse page handler.
func NewBrowsePage(svc *shelf.Service) *BrowsePage {
	return &BrowsePage{
		svc: svc,
		tpl: template.Must(template.New("page").Parse(pageTpl)),
	}
}

// ServePage handles GET /.
func (p *BrowsePage) ServePage(w http.ResponseWriter, r *http.Request) {
	frag, err := p.svc.TOC(r.Context())
	if err != nil {
		slog.Error("browse page failed", slog.String("error", err.Error()))
		http.Error(w, "unable to read shelf", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = p.tpl.Execute(w, template.HTML(frag))
}

// ServeNotebook handles GET /{name} so the links emitted by the table of
// contents resolve against the page itself.
func (p *BrowsePage) ServeNotebook(w http.ResponseWriter, r *http.Request) {
	name := notebookName(r)
	data, _, err := p.svc.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			slog.Error("serve notebook failed", slog.String("name", name), slog.String("error", err.Error()))
			http.Error(w, "unable to read notebook", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/x-ipynb+json")
	_, _ = w.Write(data)
}

const pageTpl = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>nbshelf</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:760px;margin:0 auto;padding:1rem}
li{margin:4px 0}
a{text-decoration:none}
a:hover{text-decoration:underline}
</style>
<body>
{{.}}
<script>
const es = new EventSource('/api/events');
es.addEventListener('toc.updated', () => location.reload());
</script>
</body>
</html>`
