package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/domains/book/model"
	"bookstore-api/domains/book/repository"
	"bookstore-api/domains/book/service"
	"bookstore-api/shared/page"
)

// fakeRepo keeps the catalog in memory and mirrors the store-side filter
// semantics: AND of the populated predicates, id ordering, paging after
// filtering.
type fakeRepo struct {
	books []model.Book
}

var _ repository.RepositoryInterface = (*fakeRepo)(nil)

func (f *fakeRepo) matches(b model.Book, filter model.BookFilter) bool {
	if filter.Title != "" &&
		!strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Title)) {
		return false
	}
	if filter.PublisherID != nil && b.PublisherID != *filter.PublisherID {
		return false
	}
	if filter.AuthorID != nil && !containsID(b.AuthorIDs, *filter.AuthorID) {
		return false
	}
	if filter.GenreID != nil && !containsID(b.GenreIDs, *filter.GenreID) {
		return false
	}
	return true
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeRepo) GetAll(_ context.Context, filter model.BookFilter, req page.Request) ([]model.Book, int64, error) {
	var matched []model.Book
	for _, b := range f.books {
		if f.matches(b, filter) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := req.Offset()
	if start >= len(matched) {
		return nil, int64(len(matched)), nil
	}
	end := start + req.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*model.Book, error) {
	for i := range f.books {
		if f.books[i].ID == id {
			b := f.books[i]
			return &b, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeRepo) Create(_ context.Context, b *model.Book) (*model.Book, error) {
	b.ID = int64(len(f.books) + 1)
	f.books = append(f.books, *b)
	return b, nil
}

func (f *fakeRepo) Update(_ context.Context, b *model.Book) (*model.Book, error) {
	for i := range f.books {
		if f.books[i].ID == b.ID {
			f.books[i] = *b
			return b, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	for i := range f.books {
		if f.books[i].ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return model.ErrBookNotFound
}

func (f *fakeRepo) DecrementStockWithTx(_ context.Context, _ pgx.Tx, _ int64, _ int) error {
	return nil
}

func ptr(v int64) *int64 { return &v }

// seedCatalog builds 15 books: three by author 7, five from publisher 2,
// genres alternating between 1 and 2, a couple of "Go" titles.
func seedCatalog() *fakeRepo {
	repo := &fakeRepo{}
	for i := 1; i <= 15; i++ {
		b := model.Book{
			ID:          int64(i),
			Title:       "Book " + string(rune('A'+i-1)),
			Price:       decimal.NewFromInt(int64(10 + i)),
			Stock:       5,
			PublisherID: int64(1 + i%3),
			LanguageID:  1,
			AuthorIDs:   []int64{int64(i)},
			GenreIDs:    []int64{int64(1 + i%2)},
		}
		if i%5 == 0 {
			b.AuthorIDs = append(b.AuthorIDs, 7)
		}
		if i%4 == 0 {
			b.Title = "The Go Book " + string(rune('A'+i-1))
		}
		repo.books = append(repo.books, b)
	}
	return repo
}

func ids(books []model.Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestSearch_InvalidPageRequest(t *testing.T) {
	s := service.NewBookService(seedCatalog())

	_, err := s.Search(context.Background(), model.BookFilter{}, page.Request{Page: 0, Size: 0})
	assert.ErrorIs(t, err, page.ErrInvalidPageRequest)

	_, err = s.Search(context.Background(), model.BookFilter{}, page.Request{Page: -1, Size: 10})
	assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
}

func TestSearch_NoFiltersListsWholeCatalog(t *testing.T) {
	s := service.NewBookService(seedCatalog())

	resp, err := s.Search(context.Background(), model.BookFilter{}, page.Request{Page: 0, Size: 10})
	require.NoError(t, err)

	assert.Len(t, resp.Content, 10)
	assert.Equal(t, int64(15), resp.TotalElements)
	assert.Equal(t, 2, resp.TotalPages)
	assert.False(t, resp.Last)
}

// The union of all pages of size N contains exactly the full catalog.
func TestSearch_PageUnionEqualsFullSet(t *testing.T) {
	repo := seedCatalog()
	s := service.NewBookService(repo)

	for _, size := range []int{1, 4, 7, 15, 50} {
		seen := map[int64]int{}
		pageNo := 0
		for {
			resp, err := s.List(context.Background(), page.Request{Page: pageNo, Size: size})
			require.NoError(t, err)
			for _, id := range ids(resp.Content) {
				seen[id]++
			}
			if resp.Last {
				break
			}
			pageNo++
		}
		assert.Lenf(t, seen, len(repo.books), "size %d", size)
		for id, count := range seen {
			assert.Equalf(t, 1, count, "book %d repeated with size %d", id, size)
		}
	}
}

func TestSearch_ByAuthorScenario(t *testing.T) {
	s := service.NewBookService(seedCatalog())

	resp, err := s.Search(context.Background(), model.BookFilter{AuthorID: ptr(7)}, page.Request{Page: 0, Size: 10})
	require.NoError(t, err)

	// books 5, 10, 15 carry author 7, plus book 7 by its own author id
	assert.Equal(t, []int64{5, 7, 10, 15}, ids(resp.Content))
	assert.Equal(t, int64(4), resp.TotalElements)
	assert.Equal(t, 1, resp.TotalPages)
	assert.True(t, resp.Last)
}

func TestSearch_TitleIsCaseInsensitive(t *testing.T) {
	s := service.NewBookService(seedCatalog())

	lower, err := s.ByTitle(context.Background(), "go book", page.Request{Page: 0, Size: 20})
	require.NoError(t, err)
	upper, err := s.ByTitle(context.Background(), "GO BOOK", page.Request{Page: 0, Size: 20})
	require.NoError(t, err)

	require.NotEmpty(t, lower.Content)
	assert.Equal(t, ids(lower.Content), ids(upper.Content))
}

// The general filter equals the intersection of the single-dimension
// filters applied independently.
func TestSearch_ConjunctionEqualsIntersection(t *testing.T) {
	s := service.NewBookService(seedCatalog())
	ctx := context.Background()
	all := page.Request{Page: 0, Size: 100}

	filter := model.BookFilter{Title: "book", PublisherID: ptr(1), GenreID: ptr(2)}

	combined, err := s.Search(ctx, filter, all)
	require.NoError(t, err)

	byTitle, err := s.ByTitle(ctx, "book", all)
	require.NoError(t, err)
	byPublisher, err := s.ByPublisher(ctx, 1, all)
	require.NoError(t, err)
	byGenre, err := s.ByGenre(ctx, 2, all)
	require.NoError(t, err)

	intersection := map[int64]int{}
	for _, resp := range []page.Response[model.Book]{byTitle, byPublisher, byGenre} {
		for _, id := range ids(resp.Content) {
			intersection[id]++
		}
	}
	var want []int64
	for id, count := range intersection {
		if count == 3 {
			want = append(want, id)
		}
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	assert.Equal(t, want, ids(combined.Content))
}

// Single-dimension helpers must produce exactly what the general filter
// produces with only that dimension populated.
func TestSearch_SingleDimensionDelegation(t *testing.T) {
	s := service.NewBookService(seedCatalog())
	ctx := context.Background()
	req := page.Request{Page: 0, Size: 100}

	general, err := s.Search(ctx, model.BookFilter{PublisherID: ptr(2)}, req)
	require.NoError(t, err)
	helper, err := s.ByPublisher(ctx, 2, req)
	require.NoError(t, err)
	assert.Equal(t, general, helper)
}

func TestSearch_PagePastTheEnd(t *testing.T) {
	s := service.NewBookService(seedCatalog())

	resp, err := s.Search(context.Background(), model.BookFilter{}, page.Request{Page: 5, Size: 10})
	require.NoError(t, err)

	assert.Empty(t, resp.Content)
	assert.Equal(t, int64(15), resp.TotalElements)
	assert.Equal(t, 2, resp.TotalPages)
	assert.True(t, resp.Last)
}

func TestCreate_Validation(t *testing.T) {
	s := service.NewBookService(&fakeRepo{})

	_, err := s.Create(context.Background(), model.BookRequest{
		Price:       decimal.NewFromInt(10),
		PublisherID: 1,
		LanguageID:  1,
		AuthorIDs:   []int64{1},
	})
	assert.Error(t, err, "missing title must be rejected")

	_, err = s.Create(context.Background(), model.BookRequest{
		Title:       "Valid",
		Price:       decimal.NewFromInt(-1),
		PublisherID: 1,
		LanguageID:  1,
		AuthorIDs:   []int64{1},
	})
	assert.ErrorIs(t, err, model.ErrNegativePrice)
}
