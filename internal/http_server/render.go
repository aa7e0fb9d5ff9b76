// Package http_server
package http_server

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/ro-aviation/skyhub/internal/app"
)

//go:embed views/*.gohtml
var viewsFS embed.FS

// Renderer serves the site's views. Each view is parsed together with
// the shared layout so a view's "content" block fills the page frame.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	views := []app.View{
		app.ViewHome,
		app.ViewBooking,
		app.ViewCareers,
		app.ViewPhotoAlbum,
		app.ViewSupport,
		app.ViewStaffLogin,
		app.ViewStaffDashboard,
	}
	renderer := &Renderer{templates: make(map[string]*template.Template)}
	for _, view := range views {
		name := string(view)
		parsed, err := template.ParseFS(viewsFS, "views/layout.gohtml", "views/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		renderer.templates[name] = parsed
	}
	return renderer, nil
}

func (renderer *Renderer) Render(writer io.Writer, name string, data interface{}, _ echo.Context) error {
	parsed, ok := renderer.templates[name]
	if !ok {
		return fmt.Errorf("unknown view %s", name)
	}
	return parsed.ExecuteTemplate(writer, "layout", data)
}
