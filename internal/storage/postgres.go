package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register dialect
	_ "github.com/lib/pq"                               // register driver
)

// PostgresStore keeps documents in a single keyed table, written with
// an upsert so a save is one atomic statement. Schema comes from the
// migrate command.
type PostgresStore struct {
	db   *sql.DB
	goqu *goqu.Database
}

func NewPostgresConnection(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping the database: %w", err)
	}

	return db, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:   db,
		goqu: goqu.New("postgres", db),
	}
}

func (s *PostgresStore) Load(key string) ([]byte, bool, error) {
	var doc []byte
	found, err := s.goqu.Select("doc").
		From("documents").
		Where(goqu.Ex{"key": key}).
		ScanVal(&doc)
	if err != nil {
		return nil, false, fmt.Errorf("load document %q: %w", key, err)
	}
	return doc, found, nil
}

func (s *PostgresStore) Save(key string, doc []byte) error {
	_, err := s.goqu.Insert("documents").
		Rows(goqu.Record{"key": key, "doc": doc, "updated_at": time.Now()}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{"doc": doc, "updated_at": time.Now()})).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
