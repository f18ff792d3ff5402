// Package views embeds the HTML template set served by the site.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
)

//go:embed *.html admin/*.html
var FS embed.FS

// Templates parses the embedded set with the helpers the pages rely on.
func Templates() (*template.Template, error) {
	return template.New("layout").Funcs(FuncMap()).ParseFS(FS, "*.html", "admin/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"img": func(name string) string {
			if strings.TrimSpace(name) == "" {
				return ""
			}
			return "/uploads/products/" + name
		},
		"thumb": func(name string) string {
			if strings.TrimSpace(name) == "" {
				return ""
			}
			ext := filepath.Ext(name)
			return "/uploads/products/" + strings.TrimSuffix(name, ext) + "_thumb.jpg"
		},
		"mm": func(v *int) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%d mm", *v)
		},
	}
}
