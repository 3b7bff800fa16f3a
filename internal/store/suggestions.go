package store

import "database/sql"

// InsertSuggestion inserts a suggestion for an analysis and sets its ID.
// An empty status is stored as open.
func (db *DB) InsertSuggestion(s *Suggestion) error {
	if s.Status == "" {
		s.Status = StatusOpen
	}
	result, err := db.conn.Exec(
		`INSERT INTO suggestions
		(analysis_id, category, priority, title, description, impact_score, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.AnalysisID, s.Category, s.Priority, s.Title, s.Description,
		s.ImpactScore, s.Status,
	)
	if err != nil {
		return err
	}
	s.ID, err = result.LastInsertId()
	return err
}

// GetOpenSuggestions returns all suggestions with status "open", highest
// impact first.
func (db *DB) GetOpenSuggestions() ([]Suggestion, error) {
	rows, err := db.conn.Query(
		`SELECT id, analysis_id, category, priority, title, description, impact_score, status
		 FROM suggestions WHERE status = ? ORDER BY impact_score DESC, id`,
		StatusOpen,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanSuggestions(rows)
}

func scanSuggestions(rows *sql.Rows) ([]Suggestion, error) {
	var suggestions []Suggestion
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.AnalysisID, &s.Category, &s.Priority,
			&s.Title, &s.Description, &s.ImpactScore, &s.Status); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// ResolveSuggestion marks a suggestion as resolved.
func (db *DB) ResolveSuggestion(id int64) error {
	_, err := db.conn.Exec("UPDATE suggestions SET status = ? WHERE id = ?", StatusResolved, id)
	return err
}

// ResolveMissing resolves open suggestions from earlier analyses of source
// whose title is not in current, i.e. issues the latest analysis no longer
// reports. It returns the number of suggestions resolved.
func (db *DB) ResolveMissing(source string, current []string) (int, error) {
	rows, err := db.conn.Query(
		`SELECT s.id, s.title FROM suggestions s
		 JOIN analyses a ON a.id = s.analysis_id
		 WHERE s.status = ? AND a.source = ?`,
		StatusOpen, source,
	)
	if err != nil {
		return 0, err
	}

	type openRow struct {
		id    int64
		title string
	}
	var open []openRow
	for rows.Next() {
		var r openRow
		if err := rows.Scan(&r.id, &r.title); err != nil {
			_ = rows.Close()
			return 0, err
		}
		open = append(open, r)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	keep := make(map[string]bool, len(current))
	for _, title := range current {
		keep[title] = true
	}

	resolved := 0
	for _, r := range open {
		if keep[r.title] {
			continue
		}
		if err := db.ResolveSuggestion(r.id); err != nil {
			return resolved, err
		}
		resolved++
	}
	return resolved, nil
}

// SuggestionsFor returns every suggestion stored for an analysis, highest
// impact first.
func (db *DB) SuggestionsFor(analysisID string) ([]Suggestion, error) {
	rows, err := db.conn.Query(
		`SELECT id, analysis_id, category, priority, title, description, impact_score, status
		 FROM suggestions WHERE analysis_id = ? ORDER BY impact_score DESC, id`,
		analysisID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanSuggestions(rows)
}
