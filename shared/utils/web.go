package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/itchan-dev/forumstate/shared/logger"
)

// StatusCode maps an intent error onto the HTTP status the bridge answers with.
func StatusCode(err error) int {
	var withStatus *internal_errors.ErrorWithStatusCode
	switch {
	case internal_errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, internal_errors.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.As(err, &withStatus) && withStatus.StatusCode != 0:
		return withStatus.StatusCode
	default:
		// default error is 500
		return http.StatusInternalServerError
	}
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusCode(err), map[string]string{"message": internal_errors.Message(err)})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
