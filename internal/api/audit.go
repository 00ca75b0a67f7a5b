package api

import (
	"net/http"
	"strconv"

	"github.com/mehutonkka/ohtuvarasto/internal/audit"
)

// handleContainerHistory returns the audit trail of one container, most
// recent first. History outlives the container, so a deleted id still
// answers.
//
// Query parameters:
//   - action: filter by event (created, updated, deposited, withdrawn, deleted)
//   - limit: max results (default 50, max 200)
//   - offset: pagination offset
func (s *Server) handleContainerHistory(w http.ResponseWriter, r *http.Request) {
	if s.auditRepo == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "history requires the database")
		return
	}

	id, ok := containerID(r)
	if !ok {
		writeNotFound(w, "container not found")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:      q.Get("action"),
		ContainerID: id,
		Limit:       queryInt(q.Get("limit")),
		Offset:      queryInt(q.Get("offset")),
	}

	result, err := s.auditRepo.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list audit logs", "id", id, "error", err)
		writeInternalError(w, "failed to list history")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// queryInt parses a query parameter, treating anything unparsable as 0 so
// the repository applies its defaults.
func queryInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
