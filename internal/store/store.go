package store

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/roster/internal/algo"
	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

// Port is the persistence boundary: one slot holding the whole sequence.
type Port interface {
	Load(ctx context.Context) ([]record.Record, error)
	Save(ctx context.Context, recs []record.Record) error
}

// Store holds the ordered record sequence.
type Store struct {
	mu     sync.Mutex
	port   Port
	recs   []record.Record
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty Store backed by port. Call Load to hydrate it.
func New(port Port, opts ...Option) *Store {
	s := &Store{
		port:   port,
		recs:   []record.Record{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the sequence with the port's contents.
// On failure the sequence is left empty and a KindStorage error returned.
func (s *Store) Load(ctx context.Context) error {
	recs, err := s.port.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.recs = []record.Record{}
		s.logger.Error("failed to load records", "error", err)
		return record.NewStorageError("load records", err)
	}
	s.recs = record.Clone(recs)
	s.logger.Debug("records loaded", "count", len(s.recs))
	return nil
}

// Add appends rec. Fails with KindDuplicateID if rec.ID already exists.
func (s *Store) Add(ctx context.Context, rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(rec.ID) >= 0 {
		return record.NewDuplicateIDError(rec.ID)
	}
	s.recs = append(s.recs, rec)
	s.logger.Debug("record added", "id", rec.ID, "count", len(s.recs))
	return s.persist(ctx, "add")
}

// Edit replaces the record at index, keeping its position.
//
// Fails with KindIndex if index is outside [0, Len) and with
// KindDuplicateID if a record at another index already has rec.ID.
// Keeping the record's own id is allowed.
func (s *Store) Edit(ctx context.Context, index int, rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.recs) {
		return record.NewIndexError(index, len(s.recs))
	}
	for i, r := range s.recs {
		if i != index && r.ID == rec.ID {
			return record.NewDuplicateIDError(rec.ID)
		}
	}
	s.recs[index] = rec
	s.logger.Debug("record edited", "index", index, "id", rec.ID)
	return s.persist(ctx, "edit")
}

// Remove deletes the record at index; later records shift down by one.
func (s *Store) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.recs) {
		return record.NewIndexError(index, len(s.recs))
	}
	s.recs = append(s.recs[:index:index], s.recs[index+1:]...)
	s.logger.Debug("record removed", "index", index, "count", len(s.recs))
	return s.persist(ctx, "remove")
}

// All returns a copy of the current sequence.
func (s *Store) All() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.Clone(s.recs)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

// Get returns the record at index, or a KindIndex error.
func (s *Store) Get(index int) (record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.recs) {
		return record.Record{}, record.NewIndexError(index, len(s.recs))
	}
	return s.recs[index], nil
}

// LinearSearch returns the records whose id or name contains query,
// ignoring case. See algo.LinearSearch.
func (s *Store) LinearSearch(query string) []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return algo.LinearSearch(s.recs, query)
}

// BinarySearch returns the index of id or algo.NotFound.
//
// Precondition: the sequence is sorted ascending by id, e.g. right after
// BubbleSort or MergeSort. It is not checked; on unsorted data the result
// is unspecified.
func (s *Store) BinarySearch(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return algo.BinarySearch(s.recs, id)
}

// BubbleSort sorts the sequence ascending by id and persists it.
func (s *Store) BubbleSort(ctx context.Context) error {
	return s.sortWith(ctx, "bubble", algo.BubbleSort)
}

// MergeSort sorts the sequence ascending by id and persists it.
func (s *Store) MergeSort(ctx context.Context) error {
	return s.sortWith(ctx, "merge", algo.MergeSort)
}

func (s *Store) sortWith(ctx context.Context, name string, sortFn func([]record.Record) []record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = sortFn(s.recs)
	s.logger.Debug("records sorted", "algorithm", name, "count", len(s.recs))
	return s.persist(ctx, name+" sort")
}

// Export returns the sequence as pretty-printed JSON.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.Encode(s.recs)
}

// Import replaces the whole sequence with the records in data.
//
// data is fully decoded and validated first (see codec.Decode); any
// KindFormat, KindValidation or KindDuplicateID error leaves the current
// sequence untouched.
func (s *Store) Import(ctx context.Context, data []byte) error {
	recs, err := codec.Decode(data)
	if err != nil {
		s.logger.Debug("import rejected", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = recs
	s.logger.Info("records imported", "count", len(recs))
	return s.persist(ctx, "import")
}

// ImportFrom reads r to the end and imports the result.
// A read failure is reported as KindStorage and changes nothing.
func (s *Store) ImportFrom(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return record.NewStorageError("read import source", err)
	}
	return s.Import(ctx, data)
}

// ImportAsync runs ImportFrom in a goroutine. The returned channel
// receives exactly one value (nil on success) and is then closed.
//
// Starting a second import before the first resolves is allowed but the
// later one to finish wins.
func (s *Store) ImportAsync(ctx context.Context, r io.Reader) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.ImportFrom(ctx, r)
	}()
	return done
}

// indexOf returns the index of id or -1. Caller holds mu.
func (s *Store) indexOf(id string) int {
	for i, r := range s.recs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// persist saves the current sequence. Caller holds mu.
// The in-memory state is kept even if the save fails.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.port.Save(ctx, record.Clone(s.recs)); err != nil {
		s.logger.Warn("failed to persist records; in-memory state kept",
			"op", op,
			"count", len(s.recs),
			"error", err,
		)
		return record.NewStorageError("save after "+op, err)
	}
	return nil
}
