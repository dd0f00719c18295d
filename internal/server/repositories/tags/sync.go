package tags

import "webvault/internal/dbx"

// BuildSyncStatements converts bind/unbind edge records into the ordered
// statement list executed as one atomic batch.
//
// For every bind record it emits a tag upsert followed by one edge insert
// per page id. Edge inserts resolve the tag id by name in-statement, so a
// tag created earlier in the same batch can be referenced without a round
// trip for its generated id. All bind statements precede all unbind
// statements; within each group the input order is preserved. A conflicting
// bind+unbind for the same tag and page is passed through as given, so the
// unbind wins by position.
//
// Every statement is idempotent: re-binding an existing edge is a no-op and
// unbinding a missing edge deletes nothing.
func BuildSyncStatements(bindList, unbindList []BindRecord) []dbx.Statement {
	var stmts []dbx.Statement

	for _, rec := range bindList {
		stmts = append(stmts, dbx.Statement{
			SQL:  `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			Args: []any{rec.TagName},
		})
		for _, pageID := range rec.PageIDs {
			stmts = append(stmts, dbx.Statement{
				SQL: `
					INSERT INTO page_tags (page_id, tag_id)
					SELECT $1, id FROM tags WHERE name = $2
					ON CONFLICT DO NOTHING
				`,
				Args: []any{pageID, rec.TagName},
			})
		}
	}

	for _, rec := range unbindList {
		for _, pageID := range rec.PageIDs {
			stmts = append(stmts, dbx.Statement{
				SQL:  `DELETE FROM page_tags WHERE page_id = $1 AND tag_id = (SELECT id FROM tags WHERE name = $2)`,
				Args: []any{pageID, rec.TagName},
			})
		}
	}

	return stmts
}
