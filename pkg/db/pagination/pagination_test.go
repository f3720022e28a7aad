package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsBounds(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Pagination{PageNumber: -3, PageSize: 100000}.Normalize()
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, MaxPageSize, p.PageSize)

	p = Pagination{PageNumber: 4, PageSize: 25}.Normalize()
	assert.Equal(t, 4, p.PageNumber)
	assert.Equal(t, 25, p.PageSize)
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{PageNumber: 2, PageSize: 10}, 35)
	assert.Equal(t, 2, info.PageNumber)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(35), info.TotalCount)
	assert.Equal(t, 4, info.TotalPages)
	assert.True(t, info.HasNext)

	last := BuildPageInfo(Pagination{PageNumber: 4, PageSize: 10}, 35)
	assert.False(t, last.HasNext)

	empty := BuildPageInfo(Pagination{}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
