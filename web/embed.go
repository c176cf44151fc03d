package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var views embed.FS

//go:embed public
var public embed.FS

// NewEngine plantillas html embebidas en el binario.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("join", strings.Join)
	return engine
}

// Public archivos estáticos servidos en /public.
func Public() http.FileSystem {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
