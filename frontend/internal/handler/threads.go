package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forumstate/frontend/internal/state"
	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
	"github.com/itchan-dev/forumstate/shared/utils"
)

type threadsResponse struct {
	state.ThreadList
	Categories []domain.Category `json:"categories"`
}

func (h *Handler) threadsSnapshot(category domain.Category) any {
	list := h.forum.Threads()
	resp := threadsResponse{ThreadList: list, Categories: list.Categories()}
	resp.Threads = list.InCategory(category)
	return resp
}

// GetThreads returns the list view, optionally filtered by ?category=.
func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.threadsSnapshot(r.URL.Query().Get("category")))
}

func (h *Handler) RefreshThreads(w http.ResponseWriter, r *http.Request) {
	_, err := h.forum.FetchThreadsAndUsers(r.Context())
	h.respond(w, r, err, func() any { return h.threadsSnapshot("") })
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	_, err := h.forum.AddThread(r.Context(), domain.ThreadCreationData{
		Title:    body.Title,
		Body:     body.Body,
		Category: body.Category,
	})
	h.respond(w, r, err, func() any { return h.threadsSnapshot("") })
}

// VoteThread casts the direction in the body. With ?toggle=true pressing the
// direction already held neutralizes it.
func (h *Handler) VoteThread(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	var body api.VoteRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var err error
	if toggle(r) {
		_, err = h.forum.ToggleThreadVote(r.Context(), threadId, body.Direction)
	} else {
		_, err = h.forum.VoteThread(r.Context(), threadId, body.Direction)
	}
	h.respond(w, r, err, func() any { return h.forum.State() })
}

func toggle(r *http.Request) bool {
	return r.URL.Query().Get("toggle") == "true"
}
