package seller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/entity"
	"bookstore/internal/httpx"
	"bookstore/internal/logger"
	"bookstore/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	service, mockRepo := newTestService(t)
	return NewHTTPHandler(service, logger.NewNop()), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created without password", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *entity.Seller) error {
			s.ID = 1
			return nil
		})
		stored := testutil.TestSeller
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(stored, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/sellers/", map[string]string{
			"first_name": stored.FirstName,
			"last_name":  stored.LastName,
			"email":      stored.Email,
			"password":   "engine",
		}))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, res.Code)
		assert.NotContains(t, res.Body, "password")
		assert.Equal(t, stored.Email, res.Body["email"])
		assert.Equal(t, []interface{}{}, res.Body["books"])
	})

	t.Run("invalid email", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/sellers/", map[string]string{
			"first_name": "A", "last_name": "B", "email": "nope", "password": "p",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp httpx.ErrorResponse
		testutil.DecodeBody(t, w, &resp)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})

	t.Run("missing password", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/sellers/", map[string]string{
			"first_name": "A", "last_name": "B", "email": "a@b.co",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entity.Seller{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.WithURLParam(testutil.NewRequest(http.MethodGet, "/sellers/5", nil), "id", "5")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp httpx.ErrorResponse
		testutil.DecodeBody(t, w, &resp)
		assert.Equal(t, "Seller not found", resp.Error.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entity.Seller{}, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := testutil.WithURLParam(testutil.NewRequest(http.MethodGet, "/sellers/5", nil), "id", "5")
		handler.Get(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := testutil.WithURLParam(testutil.NewRequest(http.MethodPut, "/sellers/1", map[string]string{"email": "bad"}), "id", "1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("empty email is skipped", func(t *testing.T) {
		handler, mockRepo := newTestHandler(t)
		stored := testutil.TestSeller
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(stored, nil).Times(2)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *entity.Seller) error {
			assert.Equal(t, stored.Email, s.Email)
			return nil
		})

		w := httptest.NewRecorder()
		r := testutil.WithURLParam(testutil.NewRequest(http.MethodPut, "/sellers/1", map[string]string{"email": ""}), "id", "1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	mockRepo.EXPECT().Delete(gomock.Any(), int64(2)).Return(ErrNotFound)

	w := httptest.NewRecorder()
	handler.Delete(w, testutil.WithURLParam(testutil.NewRequest(http.MethodDelete, "/sellers/1", nil), "id", "1"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.Delete(w, testutil.WithURLParam(testutil.NewRequest(http.MethodDelete, "/sellers/2", nil), "id", "2"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.Delete(w, testutil.WithURLParam(testutil.NewRequest(http.MethodDelete, "/sellers/x", nil), "id", "x"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
