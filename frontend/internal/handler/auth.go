package handler

import (
	"net/http"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/utils"
)

func (h *Handler) GetAuth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.forum.Auth())
}

// Register registers and logs in with the same credentials.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	_, err := h.forum.RegisterAndLogin(r.Context(), body.Name, body.Email, body.Password)
	h.respond(w, r, err, func() any { return h.forum.Auth() })
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	_, err := h.forum.Login(r.Context(), body.Email, body.Password)
	h.respond(w, r, err, func() any { return h.forum.Auth() })
}

func (h *Handler) RefreshProfile(w http.ResponseWriter, r *http.Request) {
	_, err := h.forum.FetchProfile(r.Context())
	h.respond(w, r, err, func() any { return h.forum.Auth() })
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.forum.Logout()
	utils.WriteJSON(w, http.StatusOK, h.forum.Auth())
}
