package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/refdeck/refdeck/internal/metadata"
	"github.com/refdeck/refdeck/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection. The database is an ephemeral
// search cache; the JSONL file remains the source of truth and the cache
// can always be rebuilt from it.
type DB struct {
	db *sql.DB
}

// selectRefFields contains the standard field list for SELECT queries.
const selectRefFields = `id, doi, title, abstract, journal, journal_ranking,
	pub_year, pub_type, volume, issue, pages, publisher, url,
	issn, isbn, language, reference_count, citation_count, source,
	favorite, notes, pdf_path, date_added,
	authors_json, tags_json, collection_ids_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			id TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT,
			abstract TEXT,
			journal TEXT,
			journal_ranking TEXT,
			pub_year INTEGER NOT NULL,
			pub_type TEXT NOT NULL,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			publisher TEXT,
			url TEXT,
			issn TEXT,
			isbn TEXT,
			language TEXT,
			reference_count INTEGER,
			citation_count INTEGER,
			source TEXT NOT NULL,
			favorite INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			pdf_path TEXT,
			date_added TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			tags_json TEXT,
			collection_ids_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi) WHERE doi IS NOT NULL AND doi != '';

		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			id,
			title,
			abstract,
			journal,
			authors_text,
			tags_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
// Returns the number of references loaded.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	refs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	refsStmt, err := d.db.Prepare(`
		INSERT INTO refs (
			id, doi, title, abstract, journal, journal_ranking,
			pub_year, pub_type, volume, issue, pages, publisher, url,
			issn, isbn, language, reference_count, citation_count, source,
			favorite, notes, pdf_path, date_added,
			authors_json, tags_json, collection_ids_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refsStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO refs_fts (id, title, abstract, journal, authors_text, tags_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, ref := range refs {
		authorsJSON, err := json.Marshal(ref.Authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", ref.ID, err)
		}
		var tagsJSON, collectionsJSON []byte
		if len(ref.Tags) > 0 {
			tagsJSON, err = json.Marshal(ref.Tags)
			if err != nil {
				return 0, fmt.Errorf("marshaling tags for %s: %w", ref.ID, err)
			}
		}
		if len(ref.CollectionIDs) > 0 {
			collectionsJSON, err = json.Marshal(ref.CollectionIDs)
			if err != nil {
				return 0, fmt.Errorf("marshaling collections for %s: %w", ref.ID, err)
			}
		}

		favorite := 0
		if ref.Favorite {
			favorite = 1
		}

		_, err = refsStmt.Exec(
			ref.ID, nullableStringValue(ref.DOI), ref.Title, nullableStringValue(ref.Abstract),
			nullableStringValue(ref.Journal), nullableStringValue(ref.JournalRanking),
			ref.Year, string(ref.Type), nullableStringValue(ref.Volume), nullableStringValue(ref.Issue),
			nullableStringValue(ref.Pages), nullableStringValue(ref.Publisher), nullableStringValue(ref.URL),
			nullableStringValue(ref.ISSN), nullableStringValue(ref.ISBN), nullableStringValue(ref.Language),
			ref.ReferenceCount, ref.CitationCount, string(ref.Source),
			favorite, nullableStringValue(ref.Notes), nullableStringValue(ref.PDFPath),
			ref.DateAdded.Format(time.RFC3339),
			string(authorsJSON), nullableString(tagsJSON), nullableString(collectionsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting ref %s: %w", ref.ID, err)
		}

		_, err = ftsStmt.Exec(
			ref.ID, ref.Title, ref.Abstract, ref.Journal,
			strings.Join(ref.Authors, ", "), strings.Join(ref.Tags, ", "),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", ref.ID, err)
		}
	}

	return len(refs), nil
}

// GetByID retrieves a reference by its ID. Returns nil without error when
// no reference matches.
func (d *DB) GetByID(id string) (*reference.Reference, error) {
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs WHERE id = ?`, id)
	return scanReference(row)
}

// GetByDOI retrieves a reference by its DOI.
func (d *DB) GetByDOI(doi string) (*reference.Reference, error) {
	if doi == "" {
		return nil, nil
	}
	row := d.db.QueryRow(`SELECT `+selectRefFields+` FROM refs WHERE doi = ?`, doi)
	return scanReference(row)
}

// Search performs a full-text search and returns matching references.
func (d *DB) Search(query string, limit int) ([]reference.Reference, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectRefFields+`
		FROM refs
		WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword      string   // General keyword search across all FTS fields
	Title        string   // Search in title only (FTS)
	Authors      []string // Author names (AND logic, prefix matching)
	Tag          string   // Exact tag membership (FTS on tags_text)
	Journal      string   // Filter by journal (SQL LIKE, case-insensitive)
	DOI          string   // Exact DOI match
	YearFrom     int      // Minimum publication year (0 = no minimum)
	YearTo       int      // Maximum publication year (0 = no maximum)
	FavoriteOnly bool
}

// SearchWithFilters performs a search with multiple optional filters.
// Returns references matching ALL specified criteria.
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]reference.Reference, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	if filters.Tag != "" {
		ftsTerms = append(ftsTerms, "tags_text:"+prepareFTSQuery(filters.Tag))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		ftsQuery := strings.Join(ftsTerms, " AND ")
		query = `SELECT ` + selectRefFields + `
			FROM refs
			WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)`
		args = append(args, ftsQuery)
	} else {
		query = `SELECT ` + selectRefFields + ` FROM refs WHERE 1=1`
	}

	if filters.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Journal != "" {
		query += " AND journal LIKE ?"
		args = append(args, "%"+filters.Journal+"%")
	}
	if filters.DOI != "" {
		query += " AND doi = ?"
		args = append(args, filters.DOI)
	}
	if filters.FavoriteOnly {
		query += " AND favorite = 1"
	}

	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix
// matching, so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	parts := strings.Fields(author)
	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// ListAll returns all references, optionally limited.
func (d *DB) ListAll(limit int) ([]reference.Reference, error) {
	query := `SELECT ` + selectRefFields + ` FROM refs ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing refs: %w", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// Count returns the total number of references.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReference(s scanner) (*reference.Reference, error) {
	var ref reference.Reference
	var doi, title, abstract, journal, ranking sql.NullString
	var volume, issue, pages, publisher, url sql.NullString
	var issn, isbn, language, notes, pdfPath sql.NullString
	var pubType, source, dateAdded string
	var favorite int
	var authorsJSON string
	var tagsJSON, collectionsJSON sql.NullString

	err := s.Scan(
		&ref.ID, &doi, &title, &abstract, &journal, &ranking,
		&ref.Year, &pubType, &volume, &issue, &pages, &publisher, &url,
		&issn, &isbn, &language, &ref.ReferenceCount, &ref.CitationCount, &source,
		&favorite, &notes, &pdfPath, &dateAdded,
		&authorsJSON, &tagsJSON, &collectionsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	ref.DOI = doi.String
	ref.Title = title.String
	ref.Abstract = abstract.String
	ref.Journal = journal.String
	ref.JournalRanking = ranking.String
	ref.Type = pubType
	ref.Volume = volume.String
	ref.Issue = issue.String
	ref.Pages = pages.String
	ref.Publisher = publisher.String
	ref.URL = url.String
	ref.ISSN = issn.String
	ref.ISBN = isbn.String
	ref.Language = language.String
	ref.Source = metadata.Source(source)
	ref.Favorite = favorite != 0
	ref.Notes = notes.String
	ref.PDFPath = pdfPath.String

	ref.DateAdded, err = time.Parse(time.RFC3339, dateAdded)
	if err != nil {
		return nil, fmt.Errorf("parsing date_added for %s: %w", ref.ID, err)
	}

	if err := json.Unmarshal([]byte(authorsJSON), &ref.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s: %w", ref.ID, err)
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &ref.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags JSON for %s: %w", ref.ID, err)
		}
	}
	if collectionsJSON.Valid && collectionsJSON.String != "" {
		if err := json.Unmarshal([]byte(collectionsJSON.String), &ref.CollectionIDs); err != nil {
			return nil, fmt.Errorf("parsing collections JSON for %s: %w", ref.ID, err)
		}
	}

	return &ref, nil
}

func scanReferences(rows *sql.Rows) ([]reference.Reference, error) {
	var refs []reference.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	return refs, rows.Err()
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
