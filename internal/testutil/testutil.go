package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bookstore/internal/entity"
	"bookstore/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestSeller is a seller fixture without books.
var TestSeller = entity.Seller{
	ID:        1,
	FirstName: "Ada",
	LastName:  "Lovelace",
	Email:     "ada@example.com",
	Password:  "$2a$10$hashedpasswordhashedpasswordhashedpasswordhashe",
	Books:     []entity.Book{},
}

// TestBook is a book fixture owned by TestSeller.
var TestBook = entity.Book{
	ID:         1,
	Title:      "Notes on the Analytical Engine",
	Author:     "Ada Lovelace",
	Year:       1843,
	CountPages: 66,
	SellerID:   1,
}

// NewRequest creates a new HTTP request for testing. body is JSON encoded
// unless it is a string, which is sent verbatim.
func NewRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		bodyBytes, _ := json.Marshal(v)
		reader = bytes.NewReader(bodyBytes)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// WithURLParam attaches a chi URL parameter so a handler can be called
// without going through a router.
func WithURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    bodyBytes,
	}
}

// DecodeBody decodes the recorded body into dst, failing the test on error.
func DecodeBody(t testing.TB, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// PassthroughTx runs the function directly with no unit of work around it.
type PassthroughTx struct{}

func (PassthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// PostgresPool connects to TEST_DB_DSN, applies migrations and empties the
// tables. The test is skipped when the variable is unset.
func PostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := store.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := store.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE books, sellers RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate test database: %v", err)
	}
	return pool
}
