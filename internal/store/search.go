package store

import (
	"fmt"
	"strings"
)

// MatchPrefix returns the IDs of messages containing a word that starts
// with token, in ascending ID order. token must be a single word.
func (db *DB) MatchPrefix(token string) ([]int64, error) {
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, `"*() `) {
		return nil, fmt.Errorf("invalid match token %q", token)
	}

	rows, err := db.Query(`
		SELECT docid FROM messages_fts
		WHERE messages_fts MATCH ?
		ORDER BY docid`, token+"*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
