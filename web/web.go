// Package web embeds the browser client served next to the API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// ServeIndex serves the client's entry page
func ServeIndex(writer http.ResponseWriter, request *http.Request) {
	index, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(writer, "client not available", http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Write(index)
}

// AssetHandler serves the client's static assets
func AssetHandler() http.Handler {
	assets, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(assets))
}
