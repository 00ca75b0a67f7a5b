package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mehutonkka/ohtuvarasto/internal/container"
)

// HTML form handlers. None of them answers with an error status: unknown ids
// redirect to the list, bad numbers become 0, and failures surface as flash
// messages on the page the user is sent to.

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.List()
	data := pageData{Containers: make([]containerView, 0, len(entries))}
	for _, e := range entries {
		data.Containers = append(data.Containers, viewOf(e))
	}
	s.render(w, r, "index", data)
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new", pageData{Title: "New container"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	name, _ := formName(r)
	capacity := formFloat(r, "capacity")
	initial := formFloat(r, "initialLevel")

	id, err := s.registry.Create(r.Context(), name, capacity, initial)
	switch {
	case errors.Is(err, container.ErrNegativeCapacity):
		setFlash(w, flashError, "Capacity must not be negative.")
	case err != nil:
		s.logFailure(r, "create container", id, err)
		setFlash(w, flashError, "The container was created but could not be saved.")
	default:
		if name == "" {
			name = container.DefaultName(id)
		}
		setFlash(w, flashSuccess, fmt.Sprintf("Created %s.", name))
	}
	redirect(w, r, "/")
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	s.render(w, r, "view", pageData{Title: entry.Name, Container: viewOf(entry)})
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	s.render(w, r, "edit", pageData{Title: "Edit " + entry.Name, Container: viewOf(entry)})
}

// handleEdit renames and resizes. A blank name keeps the old one; an
// unparsable capacity becomes 0 and the level is re-clamped.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	target := containerPath(entry.ID)

	capacity := formFloat(r, "capacity")
	if capacity < 0 {
		setFlash(w, flashError, "Capacity must not be negative.")
		redirect(w, r, target)
		return
	}

	name, given := formName(r)
	if !given {
		name = entry.Name
	}

	// Both steps apply in memory even when saving the first one fails.
	err := errors.Join(
		s.registry.Rename(r.Context(), entry.ID, name),
		s.registry.Resize(r.Context(), entry.ID, capacity),
	)
	if err != nil {
		s.logFailure(r, "edit container", entry.ID, err)
		setFlash(w, flashError, "The change was applied but could not be saved.")
	} else {
		setFlash(w, flashSuccess, "Changes saved.")
	}
	redirect(w, r, target)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleTransfer(w, r, container.DirectionDeposit)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handleTransfer(w, r, container.DirectionWithdraw)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request, dir container.Direction) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	amount := formFloat(r, "amount")

	op := s.registry.Deposit
	if dir == container.DirectionWithdraw {
		op = s.registry.Withdraw
	}
	t, found, err := op(r.Context(), id, amount)
	if !found {
		redirect(w, r, "/")
		return
	}

	if err != nil {
		s.logFailure(r, string(dir), id, err)
		setFlash(w, flashError, "The change was applied but could not be saved.")
	} else {
		kind, msg := transferMessage(t)
		setFlash(w, kind, msg)
	}
	redirect(w, r, containerPath(id))
}

// transferMessage words the outcome of a deposit or withdrawal.
func transferMessage(t container.Transfer) (kind, message string) {
	deposit := t.Direction == container.DirectionDeposit
	switch {
	case t.Partial() && deposit:
		return flashWarning, fmt.Sprintf("Only %s of %s could be added: the container is full.",
			formatNumber(t.Applied), formatNumber(t.Requested))
	case t.Partial():
		return flashWarning, fmt.Sprintf("Only %s of %s could be removed: the container is empty.",
			formatNumber(t.Applied), formatNumber(t.Requested))
	case t.Ignored():
		return flashWarning, "Nothing was changed."
	case deposit:
		return flashSuccess, fmt.Sprintf("Added %s.", formatNumber(t.Applied))
	default:
		return flashSuccess, fmt.Sprintf("Removed %s.", formatNumber(t.Applied))
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	entry, existed := s.registry.Get(id)
	if err := s.registry.Delete(r.Context(), id); err != nil {
		s.logFailure(r, "delete container", id, err)
		setFlash(w, flashError, "The container was removed but the deletion could not be saved.")
	} else if existed {
		setFlash(w, flashSuccess, fmt.Sprintf("Deleted %s.", entry.Name))
	}
	redirect(w, r, "/")
}

// pathID reads {id}, answering 404 when it does not fit an int.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := containerID(r)
	if !ok {
		s.handleNotFound(w, r)
	}
	return id, ok
}

// entry resolves {id} to a registry snapshot. When it returns false the
// response has been written: a 404 for an oversized id, otherwise a redirect
// to the list.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (container.Entry, bool) {
	id, ok := s.pathID(w, r)
	if !ok {
		return container.Entry{}, false
	}
	e, found := s.registry.Get(id)
	if !found {
		redirect(w, r, "/")
	}
	return e, found
}

func (s *Server) logFailure(r *http.Request, action string, id int, err error) {
	s.logger.Error("container change not persisted",
		"action", action,
		"id", id,
		"error", err,
		"request_id", requestID(r.Context()),
	)
}

func containerPath(id int) string {
	return fmt.Sprintf("/container/%d", id)
}

// redirect ends a form POST with 303 so the browser follows up with a GET.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
