// Package store is the entity repository: CRUD with cascade rules over the
// single persisted document.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodies/internal/db"
	"foodies/internal/log"
	"foodies/internal/model"

	"github.com/google/uuid"
)

// ErrLockTimeout is returned when another process holds the data lock.
var ErrLockTimeout = db.ErrLockTimeout

// errUnchanged lets a mutation skip the write when nothing matched.
var errUnchanged = errors.New("unchanged")

// Store reads and writes the document stored under model.DataKey. Every
// mutation is one locked transaction: load, apply, re-encode, commit.
type Store struct {
	db     *sql.DB
	lock   db.Locker
	newID  func() string
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLocker sets the cross-process lock. The default is no locking.
func WithLocker(l db.Locker) Option {
	return func(s *Store) { s.lock = l }
}

// WithIDFunc replaces the identifier generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentStore) }
}

// New creates a store over an opened database.
func New(database *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:     database,
		lock:   db.NopLock{},
		newID:  uuid.NewString,
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll returns all four collections from a single read.
func (s *Store) GetAll() (model.Document, error) {
	return s.load(s.db)
}

// Replace overwrites the stored document wholesale.
func (s *Store) Replace(doc model.Document) error {
	doc = doc.Clone()
	return s.mutate(log.OpReplace, "document", "", func(d *model.Document) error {
		*d = doc
		return nil
	})
}

func (s *Store) load(conn db.Conn) (model.Document, error) {
	raw, found, err := db.GetDocument(conn, model.DataKey)
	if err != nil {
		return model.Document{}, err
	}
	if !found {
		return model.EmptyDocument(), nil
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Corrupt data is replaced by defaults and overwritten on the next write.
		s.logger.Warn("stored document is unreadable, using empty document",
			log.FieldKey, model.DataKey, log.FieldError, err.Error())
		return model.EmptyDocument(), nil
	}
	doc.Normalize()
	return doc, nil
}

func (s *Store) save(conn db.Conn, doc model.Document) error {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return db.PutDocument(conn, model.DataKey, string(data))
}

// mutate runs fn against the freshly loaded document and persists the
// result. If fn returns errUnchanged nothing is written.
func (s *Store) mutate(op, entity, id string, fn func(doc *model.Document) error) error {
	return s.mutateLogged(op, entity, id, func(doc *model.Document, _ log.LogFields) error {
		return fn(doc)
	})
}

// mutateLogged is mutate for writes that add their own fields to the
// mutation record, such as the counts removed by a cascade.
func (s *Store) mutateLogged(op, entity, id string, fn func(doc *model.Document, fields log.LogFields) error) error {
	fields := log.NewFields().WithOperation(op).WithEntity(entity, id)
	unlock, err := s.lock.Lock()
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}
	defer unlock()

	start := s.now()
	err = db.WithTx(s.db, func(tx *sql.Tx) error {
		doc, err := s.load(tx)
		if err != nil {
			return err
		}
		if err := fn(&doc, fields); err != nil {
			return err
		}
		return s.save(tx, doc)
	})

	switch {
	case errors.Is(err, errUnchanged):
		s.logger.Debug("no matching record", fields.ToSlice()...)
		return nil
	case err != nil:
		s.logger.Error("mutation failed", fields.WithError(err).ToSlice()...)
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}
	fields[log.FieldDuration] = s.now().Sub(start).Milliseconds()
	s.logger.Debug("mutation applied", fields.ToSlice()...)
	return nil
}

func (s *Store) timestamp() string {
	return model.Timestamp(s.now())
}
