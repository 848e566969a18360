package echoweb

import (
	htmltmpl "html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	appfs "github.com/iljicevs/eduportal/fs"
)

const webTmplRoot = "assets/templates/web"

// renderer backs echo's template rendering with the embedded page
// templates. Each page is parsed together with the base layout; files
// prefixed with "_" are shared partials included in every set.
type renderer struct {
	templates map[string]*htmltmpl.Template
}

func newRenderer() (*renderer, error) {
	entries, err := fs.ReadDir(appfs.FS, webTmplRoot)
	if err != nil {
		return nil, errors.Wrap(err, "reading web templates")
	}

	var shared []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "_") {
			shared = append(shared, path.Join(webTmplRoot, e.Name()))
		}
	}

	r := &renderer{templates: make(map[string]*htmltmpl.Template)}
	for _, e := range entries {
		fname := e.Name()
		if strings.HasPrefix(fname, "_") || path.Ext(fname) != ".gohtml" {
			continue
		}
		files := append(append([]string{}, shared...), path.Join(webTmplRoot, fname))
		tmpl, err := htmltmpl.ParseFS(appfs.FS, files...)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", fname)
		}
		r.templates[strings.TrimSuffix(fname, ".gohtml")] = tmpl
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, ctx echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
