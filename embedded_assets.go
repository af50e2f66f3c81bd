package main

import (
	"embed"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed web/*
var webContent embed.FS

// serveEmbeddedFile serves a file from the embedded web directory. Empty or
// directory paths fall back to index.html.
func serveEmbeddedFile(c *gin.Context, filepath string) {
	filepath = strings.TrimPrefix(filepath, "/")
	if filepath == "" || strings.HasSuffix(filepath, "/") {
		filepath = path.Join(filepath, "index.html")
	}

	fullPath := path.Join("web", filepath)
	f, err := webContent.Open(fullPath)
	if err != nil {
		log.Warnf("File not found: %s", fullPath)
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	http.ServeContent(c.Writer, c.Request, stat.Name(), stat.ModTime(), f.(io.ReadSeeker))
}
