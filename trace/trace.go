// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trace/trace.go
// Summary: SQLite trace store for redraw requests.
//
// Records every redraw request (timestamp, cause, backoff cursor, interval)
// so the cadence of a pacer can be analyzed offline. Writes are batched on a
// background goroutine; Flush blocks until everything queued so far is on
// disk.

package trace

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cause labels what triggered a redraw request.
type Cause string

const (
	// CauseTimer marks a redraw driven by the backoff timer chain.
	CauseTimer Cause = "timer"
	// CauseReset marks the immediate redraw issued by a fast reset.
	CauseReset Cause = "reset"
)

// Entry is one recorded redraw request.
type Entry struct {
	Timestamp time.Time
	Cause     Cause
	Cursor    int
	Interval  time.Duration
}

// Config holds trace store configuration.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BatchSize is the number of entries accumulated before a flush.
	// Default: 64
	BatchSize int

	// BatchTimeout is how long to wait before flushing a partial batch.
	// Default: 2s
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async recording channel.
	// Default: 256
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     64,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 256,
	}
}

const traceSchemaVersion = 1

const traceSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS redraws (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,       -- UnixNano
    cause TEXT NOT NULL,              -- "timer" or "reset"
    cursor INTEGER NOT NULL,
    interval_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_redraws_timestamp ON redraws(timestamp);
`

// Store is a SQLite-backed redraw trace.
type Store struct {
	config Config
	db     *sql.DB

	entryChan chan Entry
	stopCh    chan struct{}
	doneCh    chan struct{}
	flushCh   chan chan struct{}
	stopOnce  sync.Once
}

// NewStore opens (or creates) the trace database and starts the batch writer.
func NewStore(config Config) (*Store, error) {
	if config.DBPath == "" {
		return nil, fmt.Errorf("trace DB path cannot be empty")
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 64
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = 2 * time.Second
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 256
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(traceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", traceSchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set schema version: %w", err)
	}

	s := &Store{
		config:    config,
		db:        db,
		entryChan: make(chan Entry, config.ChannelBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		flushCh:   make(chan chan struct{}),
	}
	go s.batchWriter()
	return s, nil
}

// Record queues an entry for writing. Never blocks the redraw path: if the
// queue is full the entry is dropped.
func (s *Store) Record(e Entry) {
	select {
	case s.entryChan <- e:
	case <-s.stopCh:
	default:
	}
}

// Flush blocks until every entry queued before the call is written.
func (s *Store) Flush() error {
	done := make(chan struct{})
	select {
	case s.flushCh <- done:
		<-done
		return nil
	case <-s.stopCh:
		return fmt.Errorf("trace store is closed")
	}
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT timestamp, cause, cursor, interval_ms FROM redraws ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query trace: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var ts, intervalMs int64
		var cause string
		var cursor int
		if err := rows.Scan(&ts, &cause, &cursor, &intervalMs); err != nil {
			return nil, fmt.Errorf("scan trace row: %w", err)
		}
		entries = append(entries, Entry{
			Timestamp: time.Unix(0, ts),
			Cause:     Cause(cause),
			Cursor:    cursor,
			Interval:  time.Duration(intervalMs) * time.Millisecond,
		})
	}
	return entries, rows.Err()
}

// Close drains pending entries, stops the writer, and closes the database.
// Safe to call more than once.
func (s *Store) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	<-s.doneCh
	return s.db.Close()
}

// batchWriter runs in a background goroutine, batching entries and flushing
// periodically.
func (s *Store) batchWriter() {
	defer close(s.doneCh)

	batch := make([]Entry, 0, s.config.BatchSize)
	timer := time.NewTimer(s.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-s.entryChan:
			batch = append(batch, e)
			if len(batch) >= s.config.BatchSize {
				flush()
				timer.Reset(s.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(s.config.BatchTimeout)

		case done := <-s.flushCh:
			// Manual flush request - drain the channel first.
			draining := true
			for draining {
				select {
				case e := <-s.entryChan:
					batch = append(batch, e)
				default:
					draining = false
				}
			}
			flush()
			close(done)

		case <-s.stopCh:
			// Drain and flush before exit.
			for {
				select {
				case e := <-s.entryChan:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *Store) writeBatch(batch []Entry) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Trace: begin batch: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT INTO redraws (timestamp, cause, cursor, interval_ms) VALUES (?, ?, ?, ?)")
	if err != nil {
		log.Printf("Trace: prepare insert: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.Exec(e.Timestamp.UnixNano(), string(e.Cause), e.Cursor, e.Interval.Milliseconds()); err != nil {
			log.Printf("Trace: insert entry: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Trace: commit batch: %v", err)
	}
}
