package store

import (
	"sort"
	"sync"
	"time"

	"github.com/signalsfoundry/orbital-catalog/tle"
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventCatalogReplaced EventType = iota
)

// Event is emitted to subscribers when the stored catalog changes.
type Event struct {
	Type    EventType
	Source  string
	Records int
}

// Record is one queryable satellite record: the raw element lines plus the
// decoded element set.
type Record struct {
	CatalogNumber string
	Name          string
	Line1         string
	Line2         string
	Elements      tle.ElementSet
}

// Store is an in-memory, thread-safe home for the most recently ingested
// catalog. The ingestion core itself is stateless; merging results across
// calls and serving queries is this layer's job.
type Store struct {
	mu sync.RWMutex

	records map[string]*Record
	source  string
	loaded  time.Time

	subs    map[int]func(Event)
	nextSub int
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
		subs:    make(map[int]func(Event)),
	}
}

// ReplaceCatalog swaps the stored records for the contents of a freshly
// ingested catalog, decoding each entry's element set. It returns an error
// if any entry fails to decode, which can only happen for catalogs built by
// hand rather than by tle.LoadCatalog.
func (s *Store) ReplaceCatalog(source string, catalog tle.Catalog) (int, error) {
	records := make(map[string]*Record, len(catalog))
	for id, entry := range catalog {
		set, err := tle.ParseElementSet(entry.Line1, entry.Line2)
		if err != nil {
			return 0, &tle.RecordError{Name: entry.Name, Reason: tle.ReasonBadField, Err: err}
		}
		records[id] = &Record{
			CatalogNumber: id,
			Name:          entry.Name,
			Line1:         entry.Line1,
			Line2:         entry.Line2,
			Elements:      set,
		}
	}

	s.mu.Lock()
	s.records = records
	s.source = source
	s.loaded = time.Now().UTC()
	event := Event{
		Type:    EventCatalogReplaced,
		Source:  source,
		Records: len(records),
	}
	subs := make([]func(Event), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return len(records), nil
}

// Get returns the record with the given catalog number, or nil if absent.
func (s *Store) Get(id string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// ByName returns every record whose name matches exactly, sorted by catalog
// number for deterministic output.
func (s *Store) ByName(name string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*Record
	for _, r := range s.records {
		if r.Name == name {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CatalogNumber < res[j].CatalogNumber })
	return res
}

// List returns a snapshot slice of all records sorted by catalog number.
func (s *Store) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CatalogNumber < res[j].CatalogNumber })
	return res
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Source returns the identifier of the source the current catalog came
// from, plus when it was loaded.
func (s *Store) Source() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.loaded
}

// Subscribe registers a callback for store events. It returns an
// unsubscribe function. Subscribers are keyed by token so unsubscribing
// one never disturbs the others, in any order.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := s.nextSub
	s.nextSub++
	s.subs[token] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, token)
	}
}
