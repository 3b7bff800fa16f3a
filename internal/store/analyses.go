package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

const analysisColumns = `id, created_at, source_kind, platform, source, size_bytes, seed, bundle`

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveAnalysis inserts a and its language shares. A missing ID is filled
// with a new UUID and a zero CreatedAt with the current time.
func (db *DB) SaveAnalysis(a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	bundle, err := json.Marshal(a.Bundle)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}

	var size sql.NullInt64
	if a.Descriptor.SizeBytes != nil {
		size = sql.NullInt64{Int64: *a.Descriptor.SizeBytes, Valid: true}
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	b := a.Bundle
	if _, err := tx.Exec(
		`INSERT INTO analyses
		(id, created_at, source_kind, platform, source, size_bytes, seed, degraded,
		 file_count, line_count, contributors, complexity, maintainability, test_coverage,
		 documentation, vulnerabilities, outdated_dependencies, license, security_score, bundle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CreatedAt.UTC().Format(timeLayout), string(a.Descriptor.Kind),
		string(a.Descriptor.Platform), a.Descriptor.Source, size,
		strconv.FormatUint(a.Seed, 10), b.Degraded,
		b.Overview.FileCount, b.Overview.LineCount, b.Overview.Contributors,
		b.Quality.Complexity, b.Quality.Maintainability, b.Quality.TestCoverage,
		b.Quality.Documentation, b.Security.Vulnerabilities,
		b.Security.OutdatedDependencies, b.Security.License, b.Security.Score,
		string(bundle),
	); err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}

	for i, l := range b.Overview.Languages {
		if _, err := tx.Exec(
			`INSERT INTO language_shares (analysis_id, position, name, percentage, files)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, i, l.Name, l.Percentage, l.Files,
		); err != nil {
			return fmt.Errorf("inserting language share %s: %w", l.Name, err)
		}
	}

	return tx.Commit()
}

// GetAnalysis returns the analysis whose ID equals or starts with id, or
// nil if none match. ErrAmbiguousID is returned when a prefix matches
// more than one analysis.
func (db *DB) GetAnalysis(id string) (*Analysis, error) {
	if id == "" {
		return nil, nil
	}
	rows, err := db.conn.Query(
		"SELECT "+analysisColumns+" FROM analyses WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2",
		id, id+"%", id,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	list, err := scanAnalyses(rows)
	if err != nil {
		return nil, err
	}
	switch {
	case len(list) == 0:
		return nil, nil
	case list[0].ID == id, len(list) == 1:
		return &list[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
}

// RecentAnalyses returns up to limit analyses, newest first.
func (db *DB) RecentAnalyses(limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.Query(
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanAnalyses(rows)
}

// GetLanguageShares returns the stored language breakdown of an analysis
// in its original order.
func (db *DB) GetLanguageShares(analysisID string) ([]estimate.LanguageShare, error) {
	rows, err := db.conn.Query(
		"SELECT name, percentage, files FROM language_shares WHERE analysis_id = ? ORDER BY position",
		analysisID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var shares []estimate.LanguageShare
	for rows.Next() {
		var l estimate.LanguageShare
		if err := rows.Scan(&l.Name, &l.Percentage, &l.Files); err != nil {
			return nil, err
		}
		shares = append(shares, l)
	}
	return shares, rows.Err()
}

// DeleteAnalysis removes an analysis with its language shares and suggestions.
func (db *DB) DeleteAnalysis(id string) error {
	_, err := db.conn.Exec("DELETE FROM analyses WHERE id = ?", id)
	return err
}

func scanAnalyses(rows *sql.Rows) ([]Analysis, error) {
	var out []Analysis
	for rows.Next() {
		var (
			a                        Analysis
			createdAt, kind, seed    string
			platform, source, bundle sql.NullString
			size                     sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &createdAt, &kind, &platform, &source, &size, &seed, &bundle); err != nil {
			return nil, err
		}
		var err error
		if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("analysis %s: parsing created_at: %w", a.ID, err)
		}
		a.Descriptor = estimate.Descriptor{
			Kind:     estimate.SourceKind(kind),
			Platform: estimate.Platform(platform.String),
			Source:   source.String,
		}
		if size.Valid {
			n := size.Int64
			a.Descriptor.SizeBytes = &n
		}
		if a.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("analysis %s: parsing seed: %w", a.ID, err)
		}
		if err := json.Unmarshal([]byte(bundle.String), &a.Bundle); err != nil {
			return nil, fmt.Errorf("analysis %s: decoding bundle: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
