package book

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

// Routes mounts the book endpoints on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /books/
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "create book", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, NewReturnedBook(b))
}

// List handles GET /books/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list books", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ReturnedAllBooks{Books: NewReturnedBooks(books)})
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewReturnedBook(b))
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	b, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, "update book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewReturnedBook(b))
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, "delete book", err)
		return
	}
	httpx.NoContent(w)
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request) (IncomingBook, bool) {
	var in IncomingBook
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return IncomingBook{}, false
	}
	if details := httpx.ValidateStruct(in); len(details) > 0 {
		httpx.ValidationError(w, r, details)
		return IncomingBook{}, false
	}
	return in, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, r, "Book not found")
	case errors.Is(err, ErrSellerNotFound):
		httpx.ValidationError(w, r, []httpx.ErrorDetail{{
			Field:   "seller_id",
			Message: "seller_id does not reference an existing seller",
		}})
	default:
		h.log.Error(op+" failed", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.InternalError(w, r)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.ValidationError(w, r, []httpx.ErrorDetail{{Field: "id", Message: "id must be a positive integer"}})
		return 0, false
	}
	return id, true
}
