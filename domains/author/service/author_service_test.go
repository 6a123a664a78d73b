package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/domains/author/model"
	"bookstore-api/domains/author/repository"
	"bookstore-api/domains/author/service"
	"bookstore-api/shared/page"
)

type mockRepo struct {
	createFn  func(ctx context.Context, a *model.Author) (*model.Author, error)
	getByIDFn func(ctx context.Context, id int64) (*model.Author, error)
	listFn    func(ctx context.Context, req page.Request) ([]model.Author, int64, error)
	updateFn  func(ctx context.Context, a *model.Author) (*model.Author, error)
	deleteFn  func(ctx context.Context, id int64) error
}

var _ repository.RepositoryInterface = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	return m.createFn(ctx, a)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepo) List(ctx context.Context, req page.Request) ([]model.Author, int64, error) {
	return m.listFn(ctx, req)
}

func (m *mockRepo) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	return m.updateFn(ctx, a)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func TestCreate_RejectsBlankNames(t *testing.T) {
	called := false
	s := service.NewAuthorService(&mockRepo{
		createFn: func(_ context.Context, a *model.Author) (*model.Author, error) {
			called = true
			return a, nil
		},
	})

	_, err := s.Create(context.Background(), model.AuthorRequest{FirstName: "", LastName: "Orwell"})
	assert.Error(t, err)
	assert.False(t, called, "repository must not be reached on invalid input")
}

func TestCreate_PassesFieldsThrough(t *testing.T) {
	s := service.NewAuthorService(&mockRepo{
		createFn: func(_ context.Context, a *model.Author) (*model.Author, error) {
			a.ID = 7
			return a, nil
		},
	})

	author, err := s.Create(context.Background(), model.AuthorRequest{FirstName: "George", LastName: "Orwell"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), author.ID)
	assert.Equal(t, "George Orwell", author.FullName())
}

func TestUpdate_UnknownAuthor(t *testing.T) {
	s := service.NewAuthorService(&mockRepo{
		getByIDFn: func(_ context.Context, _ int64) (*model.Author, error) {
			return nil, model.ErrAuthorNotFound
		},
	})

	_, err := s.Update(context.Background(), 42, model.AuthorRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestList_FormatsPage(t *testing.T) {
	authors := []model.Author{
		{ID: 1, FirstName: "George", LastName: "Orwell"},
		{ID: 2, FirstName: "Ursula", LastName: "Le Guin"},
	}
	s := service.NewAuthorService(&mockRepo{
		listFn: func(_ context.Context, _ page.Request) ([]model.Author, int64, error) {
			return authors, 12, nil
		},
	})

	resp, err := s.List(context.Background(), page.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalElements)
	assert.Equal(t, 6, resp.TotalPages)
	assert.False(t, resp.Last)
	assert.Equal(t, authors, resp.Content)
}

func TestList_InvalidPageRequest(t *testing.T) {
	s := service.NewAuthorService(&mockRepo{})

	_, err := s.List(context.Background(), page.Request{Page: 0, Size: -1})
	assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
}
