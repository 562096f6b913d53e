package seller

import (
	"errors"
	"net/http"

	"bookstore/internal/httpx"
	"bookstore/internal/logger"

	"github.com/go-chi/chi/v5"
)

type HTTPHandler struct {
	service *Service
	log     *logger.Logger
}

func NewHTTPHandler(service *Service, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// Routes mounts the seller endpoints on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /sellers/
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "create seller", err)
		return
	}
	h.log.Info("seller created", "seller_id", s.ID, "request_id", httpx.RequestIDFrom(r))
	httpx.JSON(w, http.StatusCreated, NewReturnedSeller(s))
}

// List handles GET /sellers/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list sellers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewReturnedAllSellers(sellers))
}

// Get handles GET /sellers/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get seller", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewReturnedSeller(s))
}

// Update handles PUT /sellers/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, "update seller", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewReturnedSeller(s))
}

// Delete handles DELETE /sellers/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, "delete seller", err)
		return
	}
	h.log.Info("seller deleted", "seller_id", id, "request_id", httpx.RequestIDFrom(r))
	httpx.NoContent(w)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return false
	}
	if details := httpx.ValidateStruct(dst); len(details) > 0 {
		httpx.ValidationError(w, r, details)
		return false
	}
	return true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.NotFound(w, r, "Seller not found")
		return
	}
	h.log.Error(op+" failed", "request_id", httpx.RequestIDFrom(r), "error", err)
	httpx.InternalError(w, r)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.ValidationError(w, r, []httpx.ErrorDetail{{Field: "id", Message: "id must be a positive integer"}})
		return 0, false
	}
	return id, true
}
