// Package internal hosts the embedded debug dashboard: a live view of the
// room directory and runtime stats, for operators only.
package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"poker-lab/projection"
)

//go:embed inspect.html
var templatesFS embed.FS

// RoomsProvider returns the current lobby projection.
type RoomsProvider func() []projection.RoomSummary

// StatsProvider returns the dashboard's stats block.
type StatsProvider func() map[string]any

type PageData struct {
	Rooms []projection.RoomSummary
	Stats map[string]any
}

// StartDebugServer serves /inspect (HTML) and /inspect.json on its own
// port, detached from the public API. Best effort: a failure to listen is
// not fatal to the broadcaster.
func StartDebugServer(port int, roomsProvider RoomsProvider, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	pageData := func() PageData {
		data := PageData{Stats: make(map[string]any)}
		if roomsProvider != nil {
			data.Rooms = roomsProvider()
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}
		return data
	}

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, pageData())
	})

	mux.HandleFunc("/inspect.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pageData())
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}
