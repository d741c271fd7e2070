package session

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrNotFound = errors.New("session: not found")

// Store keeps live sessions in memory, bounded by an LRU so abandoned
// sessions age out instead of accumulating. Nothing is persisted.
type Store struct {
	sessions *lru.Cache[string, *Session]
}

func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = 256
	}
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{sessions: cache}, nil
}

func (st *Store) Add(s *Session) {
	st.sessions.Add(s.ID, s)
}

func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Remove(id string) {
	st.sessions.Remove(id)
}

func (st *Store) Len() int {
	return st.sessions.Len()
}
