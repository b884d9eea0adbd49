package handler

import (
	"context"
	"net/http"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/middleware"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/internal/service"
	"emoticon-rest-api/pkg/apierror"
	"emoticon-rest-api/pkg/response"
)

// EmoticonRetriever is the part of service.EmoticonService the handler needs.
type EmoticonRetriever interface {
	Retrieve(ctx context.Context, requester model.Identity, target string) ([]byte, error)
}

// EmoticonHandler serves emoticon images.
type EmoticonHandler struct {
	emoticons EmoticonRetriever
	log       logging.Logger
}

// NewEmoticonHandler creates a new emoticon handler.
func NewEmoticonHandler(emoticons EmoticonRetriever, log logging.Logger) *EmoticonHandler {
	return &EmoticonHandler{
		emoticons: emoticons,
		log:       log.With("component", "emoticon_handler"),
	}
}

// Get handles GET /emoticon?username=
func (h *EmoticonHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apierror.Unauthorized("").WithChallenge())
		return
	}

	query := r.URL.Query()
	if !query.Has("username") {
		response.Error(w, apierror.ValidationError("invalid query",
			apierror.FieldError{Field: "username", Message: "field required"}))
		return
	}

	image, err := h.emoticons.Retrieve(r.Context(), *identity, query.Get("username"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Blob(w, http.StatusOK, service.EmoticonContentType, image)
}
