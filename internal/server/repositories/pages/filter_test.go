package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestBuildFilter_Empty(t *testing.T) {
	where, args := buildFilter(Filter{})
	assert.Equal(t, "is_deleted = FALSE", where)
	assert.Empty(t, args)
}

func TestBuildFilter_FolderOnly(t *testing.T) {
	where, args := buildFilter(Filter{FolderID: int64p(3)})
	assert.Equal(t, "is_deleted = FALSE AND folder_id = $1", where)
	assert.Equal(t, []any{int64(3)}, args)
}

func TestBuildFilter_KeywordWrappedInWildcards(t *testing.T) {
	where, args := buildFilter(Filter{Keyword: "rust"})
	assert.Equal(t, "is_deleted = FALSE AND title ILIKE $1", where)
	assert.Equal(t, []any{"%rust%"}, args)
}

func TestBuildFilter_TagMembership(t *testing.T) {
	where, args := buildFilter(Filter{TagID: int64p(7)})
	assert.Equal(t, "is_deleted = FALSE AND id IN (SELECT page_id FROM page_tags WHERE tag_id = $1)", where)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestBuildFilter_AllCombined(t *testing.T) {
	where, args := buildFilter(Filter{FolderID: int64p(3), Keyword: "rust", TagID: int64p(7)})
	assert.Equal(t,
		"is_deleted = FALSE AND folder_id = $1 AND title ILIKE $2 AND id IN (SELECT page_id FROM page_tags WHERE tag_id = $3)",
		where)
	assert.Equal(t, []any{int64(3), "%rust%", int64(7)}, args)
}
