package api

import (
	"net/http"

	"github.com/mehutonkka/ohtuvarasto/internal/container"
)

// containerJSON is the JSON API representation of a registry entry.
type containerJSON struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Capacity  float64 `json:"capacity"`
	Level     float64 `json:"level"`
	FreeSpace float64 `json:"free_space"`
}

func toJSON(e container.Entry) containerJSON {
	return containerJSON{
		ID:        e.ID,
		Name:      e.Name,
		Capacity:  e.Container.Capacity(),
		Level:     e.Container.Level(),
		FreeSpace: e.Container.FreeSpace(),
	}
}

// handleHealth returns service health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"containers": s.registry.Count(),
	})
}

// handleListContainers returns all containers in creation order.
func (s *Server) handleListContainers(w http.ResponseWriter, _ *http.Request) {
	entries := s.registry.List()
	out := make([]containerJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"containers": out,
		"count":      len(out),
	})
}

// handleGetContainer returns a single container by ID.
func (s *Server) handleGetContainer(w http.ResponseWriter, r *http.Request) {
	id, ok := containerID(r)
	if !ok {
		writeNotFound(w, "container not found")
		return
	}
	entry, found := s.registry.Get(id)
	if !found {
		writeNotFound(w, "container not found")
		return
	}
	writeJSON(w, http.StatusOK, toJSON(entry))
}
