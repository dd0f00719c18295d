package pages

import "fmt"

// buildFilter assembles the WHERE clause and bind args for the given filter.
// It is the single source of the listing predicate: Count and List both call
// it, so adding a filter here updates both paths at once.
func buildFilter(f Filter) (string, []any) {
	where := "is_deleted = FALSE"
	var args []any

	if f.FolderID != nil {
		args = append(args, *f.FolderID)
		where += fmt.Sprintf(" AND folder_id = $%d", len(args))
	}

	if f.Keyword != "" {
		args = append(args, "%"+f.Keyword+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	if f.TagID != nil {
		args = append(args, *f.TagID)
		where += fmt.Sprintf(" AND id IN (SELECT page_id FROM page_tags WHERE tag_id = $%d)", len(args))
	}

	return where, args
}
