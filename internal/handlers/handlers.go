package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"keywatch/web"
)

// NewViews builds the template engine over the embedded views. Templates are
// reparsed on every render when reload is set.
func NewViews(reload bool) fiber.Views {
	engine := html.NewFileSystem(http.FS(web.Views()), ".html")
	engine.Reload(reload)
	return engine
}
