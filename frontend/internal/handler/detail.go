package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/utils"
)

func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.forum.Detail())
}

func (h *Handler) OpenThread(w http.ResponseWriter, r *http.Request) {
	_, err := h.forum.FetchThreadDetail(r.Context(), chi.URLParam(r, "threadId"))
	h.respond(w, r, err, func() any { return h.forum.Detail() })
}

func (h *Handler) LeaveThread(w http.ResponseWriter, r *http.Request) {
	h.forum.LeaveThread()
	utils.WriteJSON(w, http.StatusOK, h.forum.Detail())
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCommentRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	_, err := h.forum.AddComment(r.Context(), chi.URLParam(r, "threadId"), body.Content)
	h.respond(w, r, err, func() any { return h.forum.Detail() })
}

func (h *Handler) VoteComment(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	commentId := chi.URLParam(r, "commentId")
	var body api.VoteRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var err error
	if toggle(r) {
		_, err = h.forum.ToggleCommentVote(r.Context(), threadId, commentId, body.Direction)
	} else {
		_, err = h.forum.VoteComment(r.Context(), threadId, commentId, body.Direction)
	}
	h.respond(w, r, err, func() any { return h.forum.Detail() })
}
