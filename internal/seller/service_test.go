package seller

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/entity"
	"bookstore/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func newTestService(t *testing.T) (*Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	return NewService(mockRepo, testutil.PassthroughTx{}, fakeHash), mockRepo
}

func TestService_Create(t *testing.T) {
	service, mockRepo := newTestService(t)

	req := CreateRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "engine"}

	gomock.InOrder(
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *entity.Seller) error {
			assert.Equal(t, "hashed:engine", s.Password)
			s.ID = 11
			return nil
		}),
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(11)).Return(entity.Seller{
			ID: 11, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "hashed:engine", Books: []entity.Book{},
		}, nil),
	)

	got, err := service.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.NotNil(t, got.Books)
	assert.Empty(t, got.Books)
}

func TestService_Create_HashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	boom := errors.New("boom")
	service := NewService(mockRepo, testutil.PassthroughTx{}, func(string) (string, error) { return "", boom })

	_, err := service.Create(context.Background(), CreateRequest{Password: "x"})

	assert.ErrorIs(t, err, boom)
}

func TestService_List(t *testing.T) {
	service, mockRepo := newTestService(t)

	mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

	sellers, err := service.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, sellers)
	assert.Empty(t, sellers)
}

func TestService_Update(t *testing.T) {
	t.Run("applies non-empty fields", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		current := entity.Seller{ID: 3, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

		gomock.InOrder(
			mockRepo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(current, nil),
			mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *entity.Seller) error {
				assert.Equal(t, "Max", s.FirstName)
				assert.Equal(t, "Lovelace", s.LastName)
				assert.Equal(t, "ada@example.com", s.Email)
				return nil
			}),
			mockRepo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entity.Seller{ID: 3, FirstName: "Max", LastName: "Lovelace", Email: "ada@example.com"}, nil),
		)

		got, err := service.Update(context.Background(), 3, UpdateRequest{FirstName: strPtr("Max"), LastName: strPtr("")})

		require.NoError(t, err)
		assert.Equal(t, "Max", got.FirstName)
	})

	t.Run("not found does not write", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(entity.Seller{}, ErrNotFound)

		_, err := service.Update(context.Background(), 9, UpdateRequest{FirstName: strPtr("Max")})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	service, mockRepo := newTestService(t)

	mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	mockRepo.EXPECT().Delete(gomock.Any(), int64(2)).Return(ErrNotFound)

	require.NoError(t, service.Delete(context.Background(), 1))
	assert.ErrorIs(t, service.Delete(context.Background(), 2), ErrNotFound)
}
