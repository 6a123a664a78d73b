package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/shared/page"
)

func TestNewRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req, err := page.NewRequest(2, 10)
		require.NoError(t, err)
		assert.Equal(t, 20, req.Offset())
		assert.Equal(t, 10, req.Limit())
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := page.NewRequest(0, 0)
		assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := page.NewRequest(0, -5)
		assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
	})

	t.Run("negative page", func(t *testing.T) {
		_, err := page.NewRequest(-1, 10)
		assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
	})
}

func TestFormat(t *testing.T) {
	req := page.Request{Page: 0, Size: 10}

	t.Run("empty collection", func(t *testing.T) {
		resp := page.Format[int](req, 0, nil)
		assert.NotNil(t, resp.Content)
		assert.Empty(t, resp.Content)
		assert.Equal(t, 0, resp.TotalPages)
		assert.True(t, resp.Last)
	})

	t.Run("exact multiple of size", func(t *testing.T) {
		resp := page.Format(req, 20, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
		assert.Equal(t, 2, resp.TotalPages)
		assert.False(t, resp.Last)
	})

	t.Run("partial last page rounds up", func(t *testing.T) {
		resp := page.Format(page.Request{Page: 2, Size: 10}, 21, []int{21})
		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.Last)
	})

	t.Run("single page", func(t *testing.T) {
		resp := page.Format(req, 3, []int{1, 2, 3})
		assert.Equal(t, int64(3), resp.TotalElements)
		assert.Equal(t, 1, resp.TotalPages)
		assert.True(t, resp.Last)
	})

	t.Run("page past the end", func(t *testing.T) {
		resp := page.Format[int](page.Request{Page: 9, Size: 10}, 21, nil)
		assert.Empty(t, resp.Content)
		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.Last)
	})
}

// total_pages == 0 iff total_elements == 0, otherwise ceil(total/size).
func TestFormat_TotalPagesInvariant(t *testing.T) {
	for total := int64(0); total <= 50; total++ {
		for size := 1; size <= 7; size++ {
			resp := page.Format[int](page.Request{Page: 0, Size: size}, total, nil)
			if total == 0 {
				assert.Equal(t, 0, resp.TotalPages)
				continue
			}
			want := int(total) / size
			if int(total)%size != 0 {
				want++
			}
			assert.Equalf(t, want, resp.TotalPages, "total=%d size=%d", total, size)
		}
	}
}

func TestMap(t *testing.T) {
	src := page.Format(page.Request{Page: 1, Size: 2}, 5, []int{3, 4})
	dst := page.Map(src, func(v int) int { return v * 10 })

	assert.Equal(t, []int{30, 40}, dst.Content)
	assert.Equal(t, src.Page, dst.Page)
	assert.Equal(t, src.TotalElements, dst.TotalElements)
	assert.Equal(t, src.TotalPages, dst.TotalPages)
	assert.Equal(t, src.Last, dst.Last)
}
