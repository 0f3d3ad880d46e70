package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup-service/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	indexView   = "index.html"
	resultsView = "results.html"
)

var views = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type formData struct {
	Latitude  string
	Longitude string
	Error     string
}

type resultsData struct {
	Forecast models.Forecast
}

// renderView executes into a buffer first so a template failure can still produce a 500.
func renderView(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		requestLogger(r).Error("render view", zap.String("view", name), zap.Error(err))
		http.Error(w, MsgUnexpected, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
