// Package inpsql provides data types and methods for PSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_link_resolver/internal/storage/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

const dayLayout = "2006-01-02"
const partitionSuffixLayout = "20060102"
const partitionPrefix = "daily_metrics_"

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	Cfg *config.StorageConfig
	DB  *sqlx.DB
}

// InitStorage initializes a Storage object, sets its attributes and starts a listener for graceful closure.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig) (*Storage, error) {
	db, err := sqlx.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := Storage{
		Cfg: cfg,
		DB:  db,
	}
	err = st.createTables(ctx)
	if err != nil {
		return nil, err
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		err := st.DB.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Println("PSQL DB connection closed successfully")
	}()
	return &st, nil
}

// DumpLink stores a new link row, failing on an alias uniqueness conflict.
func (s *Storage) DumpLink(ctx context.Context, link modelstorage.NewLinkEntry) (int64, error) {
	query := `INSERT INTO links (alias, url, user_id, password_hash, expires_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	// create channels for listening to the go routine result
	dumpDone := make(chan int64, 1)
	dumpError := make(chan error, 1)
	go func() {
		var id int64
		err := s.DB.GetContext(ctx, &id, query,
			link.Alias,
			link.URL,
			toNullString(link.UserID),
			toNullString(link.PasswordHash),
			toNullTime(link.ExpiresAt),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				dumpError <- &storageErrors.AlreadyExistsError{Err: err, Alias: link.Alias}
				return
			}
			dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		dumpDone <- id
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Dumping link:", ctx.Err())
		return 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case dmpError := <-dumpError:
		log.Println("Dumping link:", dmpError.Error())
		return 0, dmpError
	case id := <-dumpDone:
		log.Println("Dumping link:", link.Alias, "as", link.URL)
		return id, nil
	}
}

// RetrieveLink returns a full link row identified by its alias.
func (s *Storage) RetrieveLink(ctx context.Context, alias string) (modelstorage.LinkEntry, error) {
	query := `SELECT id, alias, url, user_id, password_hash, created_at, expires_at, last_accessed_at FROM links WHERE alias = $1`
	// create channels for listening to the go routine result
	retrieveDone := make(chan modelstorage.LinkEntry, 1)
	retrieveError := make(chan error, 1)
	go func() {
		var entry modelstorage.LinkEntry
		err := s.DB.GetContext(ctx, &entry, query, alias)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				retrieveError <- &storageErrors.NotFoundError{Err: err, Alias: alias}
				return
			}
			retrieveError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		retrieveDone <- entry
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Retrieving link:", ctx.Err())
		return modelstorage.LinkEntry{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		log.Println("Retrieving link:", rtrvError.Error())
		return modelstorage.LinkEntry{}, rtrvError
	case entry := <-retrieveDone:
		log.Println("Retrieving link:", alias, "as", entry.URL)
		return entry, nil
	}
}

// RetrieveLinksByUserID returns all link rows owned by one particular user ID.
func (s *Storage) RetrieveLinksByUserID(ctx context.Context, userID string) ([]modelstorage.LinkEntry, error) {
	query := `SELECT id, alias, url, user_id, password_hash, created_at, expires_at, last_accessed_at FROM links WHERE user_id = $1 ORDER BY created_at DESC`
	stmt, err := s.DB.PreparexContext(ctx, query)
	if err != nil {
		log.Println("Retrieving links by user ID:", err)
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	defer stmt.Close()
	rows, err := stmt.QueryxContext(ctx, userID)
	if err != nil {
		log.Println("Retrieving links by user ID:", err)
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	defer rows.Close()
	var entries []modelstorage.LinkEntry
	for rows.Next() {
		var entry modelstorage.LinkEntry
		if err := rows.StructScan(&entry); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return entries, nil
}

// DeleteLink removes a link row conditionally on its alias and owner, cache invalidation is up to the caller.
func (s *Storage) DeleteLink(ctx context.Context, alias string, userID string) error {
	query := `DELETE FROM links WHERE alias = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query, alias, userID)
	if err != nil {
		log.Println("Deleting link:", err)
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if n == 0 {
		return &storageErrors.NotFoundError{Alias: alias}
	}
	log.Println("Deleting link:", alias, "done")
	return nil
}

// RetrieveRecentURLs returns destination URLs of the most recently created links.
func (s *Storage) RetrieveRecentURLs(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT url FROM links ORDER BY id DESC LIMIT $1`
	var urls []string
	err := s.DB.SelectContext(ctx, &urls, query, limit)
	if err != nil {
		log.Println("Retrieving recent URLs:", err)
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return urls, nil
}

// RecordHit atomically increments the (day, link_id) bucket and refreshes the link access timestamp.
// The upsert is a single statement so that concurrent hits on one bucket never lose updates.
func (s *Storage) RecordHit(ctx context.Context, linkID int64, at time.Time) error {
	day := at.UTC().Format(dayLayout)
	upsertQuery := `INSERT INTO daily_metrics (day, link_id, hits, last_access) VALUES ($1::date, $2, 1, $3)
		ON CONFLICT (day, link_id) DO UPDATE
		SET hits = daily_metrics.hits + 1,
		    last_access = GREATEST(daily_metrics.last_access, EXCLUDED.last_access)`
	touchQuery := `UPDATE links SET last_accessed_at = GREATEST(COALESCE(last_accessed_at, 'epoch'::timestamptz), $2) WHERE id = $1`
	// create channels for listening to the go routine result
	recordDone := make(chan bool, 1)
	recordError := make(chan error, 1)
	go func() {
		tx, err := s.DB.BeginTxx(ctx, nil)
		if err != nil {
			recordError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		defer tx.Rollback()
		_, err = tx.ExecContext(ctx, upsertQuery, day, linkID, at)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
				// partitioned insert with no partition covering the day
				recordError <- &storageErrors.PartitionMissingError{Err: err, Day: day}
				return
			}
			recordError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		_, err = tx.ExecContext(ctx, touchQuery, linkID, at)
		if err != nil {
			recordError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		if err = tx.Commit(); err != nil {
			recordError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		recordDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Recording hit:", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rcrdError := <-recordError:
		log.Println("Recording hit:", rcrdError.Error())
		return rcrdError
	case <-recordDone:
		return nil
	}
}

// RetrieveDailyMetrics returns bucket rows of one link over an inclusive day interval, days with no
// hits are absent from the result.
func (s *Storage) RetrieveDailyMetrics(ctx context.Context, linkID int64, from time.Time, to time.Time) ([]modelstorage.DailyMetricEntry, error) {
	query := `SELECT day, link_id, hits, last_access FROM daily_metrics
		WHERE link_id = $1 AND day BETWEEN $2::date AND $3::date ORDER BY day ASC`
	stmt, err := s.DB.PreparexContext(ctx, query)
	if err != nil {
		log.Println("Retrieving daily metrics:", err)
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	defer stmt.Close()
	rows, err := stmt.QueryxContext(ctx, linkID, from.UTC().Format(dayLayout), to.UTC().Format(dayLayout))
	if err != nil {
		log.Println("Retrieving daily metrics:", err)
		return nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	defer rows.Close()
	var entries []modelstorage.DailyMetricEntry
	for rows.Next() {
		var entry modelstorage.DailyMetricEntry
		if err := rows.StructScan(&entry); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return entries, nil
}

// CreateDailyPartitions provisions one partition per day starting at from, idempotently.
func (s *Storage) CreateDailyPartitions(ctx context.Context, from time.Time, days int) error {
	for offset := 0; offset < days; offset++ {
		start := from.UTC().AddDate(0, 0, offset)
		end := start.AddDate(0, 0, 1)
		query := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS daily_metrics_%s PARTITION OF daily_metrics FOR VALUES FROM ('%s') TO ('%s')`,
			start.Format(partitionSuffixLayout),
			start.Format(dayLayout),
			end.Format(dayLayout),
		)
		_, err := s.DB.ExecContext(ctx, query)
		if err != nil {
			return &storageErrors.ExecutionPSQLError{Err: err}
		}
		log.Println("Created daily metrics partition for", start.Format(dayLayout))
	}
	return nil
}

// DropDailyPartitionsBefore retires whole partitions older than the cutoff day, never deleting
// individual bucket rows.
func (s *Storage) DropDailyPartitionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT c.relname FROM pg_inherits i
		JOIN pg_class c ON c.oid = i.inhrelid
		JOIN pg_class p ON p.oid = i.inhparent
		WHERE p.relname = 'daily_metrics'`
	var names []string
	err := s.DB.SelectContext(ctx, &names, query)
	if err != nil {
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	cutoffDay := cutoff.UTC().Format(partitionSuffixLayout)
	dropped := 0
	for _, name := range names {
		suffix, ok := partitionDay(name)
		if !ok || suffix >= cutoffDay {
			continue
		}
		_, err := s.DB.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name))
		if err != nil {
			return dropped, &storageErrors.ExecutionPSQLError{Err: err}
		}
		log.Println("Dropped daily metrics partition", name)
		dropped++
	}
	return dropped, nil
}

// DeleteStaleLinks removes links whose last access fell behind the cutoff, links never resolved
// age from their creation time instead.
func (s *Storage) DeleteStaleLinks(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM links WHERE COALESCE(last_accessed_at, created_at) < $1`
	res, err := s.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		log.Println("Deleting stale links:", err)
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return removed, nil
}

// DeleteStaleCollections removes collections not read since the cutoff day, items cascade.
func (s *Storage) DeleteStaleCollections(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM collections WHERE last_seen < $1::date`
	res, err := s.DB.ExecContext(ctx, query, cutoff.UTC().Format(dayLayout))
	if err != nil {
		log.Println("Deleting stale collections:", err)
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, &storageErrors.ExecutionPSQLError{Err: err}
	}
	return removed, nil
}

// DumpCollection stores a collection row with its dense item sequence atomically, failing on an
// alias uniqueness conflict.
func (s *Storage) DumpCollection(ctx context.Context, alias string, userID string, urls []string) (int64, error) {
	collectionQuery := `INSERT INTO collections (alias, user_id) VALUES ($1, $2) RETURNING id`
	itemQuery := `INSERT INTO collection_items (collection_id, position, url) VALUES ($1, $2, $3)`
	// create channels for listening to the go routine result
	dumpDone := make(chan int64, 1)
	dumpError := make(chan error, 1)
	go func() {
		tx, err := s.DB.BeginTxx(ctx, nil)
		if err != nil {
			dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		defer tx.Rollback()
		var id int64
		err = tx.GetContext(ctx, &id, collectionQuery, alias, toNullString(userID))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				dumpError <- &storageErrors.AlreadyExistsError{Err: err, Alias: alias}
				return
			}
			dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		for position, url := range urls {
			_, err = tx.ExecContext(ctx, itemQuery, id, position, url)
			if err != nil {
				dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
				return
			}
		}
		if err = tx.Commit(); err != nil {
			dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		dumpDone <- id
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		log.Println("Dumping collection:", ctx.Err())
		return 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case dmpError := <-dumpError:
		log.Println("Dumping collection:", dmpError.Error())
		return 0, dmpError
	case id := <-dumpDone:
		log.Println("Dumping collection:", alias, "with", len(urls), "items")
		return id, nil
	}
}

// RetrieveCollection returns a collection row with its items ordered by position and bumps last_seen.
func (s *Storage) RetrieveCollection(ctx context.Context, alias string) (modelstorage.CollectionEntry, []modelstorage.CollectionItemEntry, error) {
	entryQuery := `SELECT id, alias, user_id, last_seen FROM collections WHERE alias = $1`
	itemsQuery := `SELECT position, url FROM collection_items WHERE collection_id = $1 ORDER BY position ASC`
	touchQuery := `UPDATE collections SET last_seen = CURRENT_DATE WHERE id = $1 AND last_seen < CURRENT_DATE`
	var entry modelstorage.CollectionEntry
	err := s.DB.GetContext(ctx, &entry, entryQuery, alias)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modelstorage.CollectionEntry{}, nil, &storageErrors.NotFoundError{Err: err, Alias: alias}
		}
		log.Println("Retrieving collection:", err)
		return modelstorage.CollectionEntry{}, nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	var items []modelstorage.CollectionItemEntry
	err = s.DB.SelectContext(ctx, &items, itemsQuery, entry.ID)
	if err != nil {
		log.Println("Retrieving collection items:", err)
		return modelstorage.CollectionEntry{}, nil, &storageErrors.ExecutionPSQLError{Err: err}
	}
	// retention bookkeeping only, not access control
	_, err = s.DB.ExecContext(ctx, touchQuery, entry.ID)
	if err != nil {
		log.Println("Touching collection last_seen:", err)
	}
	return entry, items, nil
}

// RetrieveCollectionItem returns the single URL held at one position of a collection.
func (s *Storage) RetrieveCollectionItem(ctx context.Context, alias string, position int) (string, error) {
	query := `SELECT ci.url FROM collection_items ci
		JOIN collections c ON c.id = ci.collection_id
		WHERE c.alias = $1 AND ci.position = $2`
	var url string
	err := s.DB.GetContext(ctx, &url, query, alias, position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &storageErrors.NotFoundError{Err: err, Alias: alias}
		}
		log.Println("Retrieving collection item:", err)
		return "", &storageErrors.ExecutionPSQLError{Err: err}
	}
	return url, nil
}

// DeleteCollection removes a collection row conditionally on its alias and owner, items cascade.
func (s *Storage) DeleteCollection(ctx context.Context, alias string, userID string) error {
	query := `DELETE FROM collections WHERE alias = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query, alias, userID)
	if err != nil {
		log.Println("Deleting collection:", err)
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if n == 0 {
		return &storageErrors.NotFoundError{Alias: alias}
	}
	log.Println("Deleting collection:", alias, "done")
	return nil
}

// PingDB verifies the PSQL DB connection.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the PSQL DB connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// createTables creates tables for PSQL DB storage if not exist.
func (s *Storage) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS links (
			id bigserial PRIMARY KEY,
			alias text NOT NULL UNIQUE,
			url text NOT NULL,
			user_id uuid,
			password_hash text,
			created_at timestamptz NOT NULL DEFAULT now(),
			expires_at timestamptz,
			last_accessed_at timestamptz
		)`,
		`CREATE TABLE IF NOT EXISTS collections (
			id bigserial PRIMARY KEY,
			alias text NOT NULL UNIQUE,
			user_id uuid,
			last_seen date NOT NULL DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE IF NOT EXISTS collection_items (
			id bigserial,
			collection_id bigint NOT NULL REFERENCES collections (id) ON DELETE CASCADE,
			position integer NOT NULL,
			url text NOT NULL,
			UNIQUE (collection_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			day date NOT NULL,
			link_id bigint NOT NULL,
			hits bigint NOT NULL,
			last_access timestamptz NOT NULL,
			PRIMARY KEY (day, link_id)
		) PARTITION BY RANGE (day)`,
	}
	for _, query := range queries {
		_, err := s.DB.ExecContext(ctx, query)
		if err != nil {
			return err
		}
	}
	return nil
}

// partitionDay extracts the YYYYMMDD suffix of a daily metrics partition name. Attached tables
// that do not follow the naming scheme are reported as not ok rather than sliced blindly.
func partitionDay(name string) (string, bool) {
	if !strings.HasPrefix(name, partitionPrefix) {
		return "", false
	}
	suffix := name[len(partitionPrefix):]
	if _, err := time.Parse(partitionSuffixLayout, suffix); err != nil {
		return "", false
	}
	return suffix, true
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
