package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/qnorm/pkg/qnorm/pos"
	"github.com/cognicore/qnorm/pkg/qnorm/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS synsets (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS synset_lemmas (
	synset_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	lemma TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY(synset_id, position),
	FOREIGN KEY(synset_id) REFERENCES synsets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_synset_lemmas_lemma ON synset_lemmas(lemma);

CREATE TABLE IF NOT EXISTS senses (
	lemma TEXT NOT NULL,
	synset_id TEXT NOT NULL,
	number INTEGER NOT NULL,
	PRIMARY KEY(lemma, synset_id)
);

CREATE TABLE IF NOT EXISTS exceptions (
	category TEXT NOT NULL,
	form TEXT NOT NULL,
	position INTEGER NOT NULL,
	base TEXT NOT NULL,
	PRIMARY KEY(category, form, position)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Import writes a dataset in a single transaction
func (s *sqliteStore) Import(ctx context.Context, d store.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertSynsets(ctx, tx, d.Synsets); err != nil {
		return fmt.Errorf("import synsets: %w", err)
	}
	if err := insertSenses(ctx, tx, d.Senses); err != nil {
		return fmt.Errorf("import senses: %w", err)
	}
	if err := insertExceptions(ctx, tx, d.Exceptions); err != nil {
		return fmt.Errorf("import exceptions: %w", err)
	}

	return tx.Commit()
}

func insertSynsets(ctx context.Context, tx *sql.Tx, synsets []store.Synset) error {
	if len(synsets) == 0 {
		return nil
	}
	synStmt, err := tx.PrepareContext(ctx, `
INSERT INTO synsets (id, category) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET category=excluded.category;
`)
	if err != nil {
		return err
	}
	defer synStmt.Close()

	delStmt, err := tx.PrepareContext(ctx, `DELETE FROM synset_lemmas WHERE synset_id=?`)
	if err != nil {
		return err
	}
	defer delStmt.Close()

	lemmaStmt, err := tx.PrepareContext(ctx, `
INSERT INTO synset_lemmas (synset_id, position, name, lemma, count) VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer lemmaStmt.Close()

	for _, syn := range synsets {
		if syn.ID == "" {
			continue
		}
		if _, err := synStmt.ExecContext(ctx, syn.ID, string(syn.Category)); err != nil {
			return err
		}
		if _, err := delStmt.ExecContext(ctx, syn.ID); err != nil {
			return err
		}
		for i, l := range syn.Lemmas {
			if l.Name == "" {
				continue
			}
			if _, err := lemmaStmt.ExecContext(ctx, syn.ID, i, l.Name, store.Key(l.Name), l.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertSenses(ctx context.Context, tx *sql.Tx, senses []store.Sense) error {
	if len(senses) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO senses (lemma, synset_id, number) VALUES (?, ?, ?)
ON CONFLICT(lemma, synset_id) DO UPDATE SET number=excluded.number;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, sn := range senses {
		if sn.Lemma == "" || sn.SynsetID == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, store.Key(sn.Lemma), sn.SynsetID, sn.Number); err != nil {
			return err
		}
	}
	return nil
}

func insertExceptions(ctx context.Context, tx *sql.Tx, excs []store.Exception) error {
	if len(excs) == 0 {
		return nil
	}
	delStmt, err := tx.PrepareContext(ctx, `DELETE FROM exceptions WHERE category=? AND form=?`)
	if err != nil {
		return err
	}
	defer delStmt.Close()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO exceptions (category, form, position, base) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, exc := range excs {
		form := store.Key(exc.Form)
		if form == "" || len(exc.Bases) == 0 {
			continue
		}
		if _, err := delStmt.ExecContext(ctx, string(exc.Category), form); err != nil {
			return err
		}
		for i, base := range exc.Bases {
			if _, err := stmt.ExecContext(ctx, string(exc.Category), form, i, base); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasLemma checks the lemma index for a category
func (s *sqliteStore) HasLemma(ctx context.Context, lemma string, cat pos.Category) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
SELECT 1
FROM synset_lemmas sl
JOIN synsets s ON s.id = sl.synset_id
WHERE sl.lemma = ? AND s.category = ?
LIMIT 1;
`, store.Key(lemma), string(cat)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Exceptions returns the base forms listed for an irregular form
func (s *sqliteStore) Exceptions(ctx context.Context, form string, cat pos.Category) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT base FROM exceptions WHERE category = ? AND form = ? ORDER BY position;
`, string(cat), store.Key(form))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bases []string
	for rows.Next() {
		var base string
		if err := rows.Scan(&base); err != nil {
			return nil, err
		}
		bases = append(bases, base)
	}
	return bases, rows.Err()
}

// Synsets returns the synsets containing a lemma with all their members
func (s *sqliteStore) Synsets(ctx context.Context, lemma string, cat pos.Category) ([]store.Synset, error) {
	key := store.Key(lemma)
	args := []interface{}{key, key}
	filter := ""
	if cat != pos.CategoryNone {
		filter = "AND s.category = ?"
		args = append(args, string(cat))
	}

	query := fmt.Sprintf(`
SELECT s.id, s.category
FROM synsets s
LEFT JOIN senses sn ON sn.synset_id = s.id AND sn.lemma = ?
WHERE s.id IN (SELECT synset_id FROM synset_lemmas WHERE lemma = ?)
%s
GROUP BY s.id, s.category
ORDER BY
	CASE s.category WHEN 'n' THEN 0 WHEN 'v' THEN 1 WHEN 'a' THEN 2 WHEN 'r' THEN 3 ELSE 4 END,
	COALESCE(MIN(sn.number), %d),
	s.id;
`, filter, store.NoSense)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var synsets []store.Synset
	for rows.Next() {
		var syn store.Synset
		var category string
		if err := rows.Scan(&syn.ID, &category); err != nil {
			rows.Close()
			return nil, err
		}
		syn.Category = pos.Category(category)
		synsets = append(synsets, syn)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range synsets {
		lemmas, err := s.loadLemmas(ctx, synsets[i].ID)
		if err != nil {
			return nil, err
		}
		synsets[i].Lemmas = lemmas
	}
	return synsets, nil
}

func (s *sqliteStore) loadLemmas(ctx context.Context, synsetID string) ([]store.Lemma, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, count FROM synset_lemmas WHERE synset_id = ? ORDER BY position;
`, synsetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lemmas []store.Lemma
	for rows.Next() {
		var l store.Lemma
		if err := rows.Scan(&l.Name, &l.Count); err != nil {
			return nil, err
		}
		lemmas = append(lemmas, l)
	}
	return lemmas, rows.Err()
}

// Stats counts rows per table
func (s *sqliteStore) Stats(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM synsets`, &st.Synsets},
		{`SELECT COUNT(DISTINCT lemma) FROM synset_lemmas`, &st.Lemmas},
		{`SELECT COUNT(*) FROM senses`, &st.Senses},
		{`SELECT COUNT(*) FROM (SELECT DISTINCT category, form FROM exceptions)`, &st.Exceptions},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return store.Stats{}, fmt.Errorf("stats %s: %w", strings.TrimPrefix(c.query, "SELECT "), err)
		}
	}
	return st, nil
}
