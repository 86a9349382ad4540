package hymn

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hinario/internal/platform/request"
	"github.com/taibuivan/hinario/internal/platform/respond"
)

// Handler exposes the public-hymns HTTP surface.
//
// This surface is wire-exact for the legacy clients: the listing is a bare
// JSON array, the created hymn a bare object, and errors a flat
// {"error": ..., "code": ...} payload. No success envelope.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listHymns)
	router.Post("/", handler.createHymn)
	return router
}

// listHymns handles GET /api/public-hymns.
func (handler *Handler) listHymns(writer http.ResponseWriter, request *http.Request) {
	hymns, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, hymns)
}

// createHymn handles POST /api/public-hymns.
func (handler *Handler) createHymn(writer http.ResponseWriter, request *http.Request) {
	var input CreatePublicHymnInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	hymn, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, hymn)
}
