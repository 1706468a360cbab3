package kafka

import (
	"sync"

	"github.com/google/btree"
	"github.com/mosaicnetworks/gossamer/src/common"
)

// Entry is a message of a log.
type Entry struct {
	Offset int
	Msg    int
}

func (e Entry) Less(than btree.Item) bool {
	return e.Offset < than.(Entry).Offset
}

// Store holds the logs and the committed offsets of every key.
type Store struct {
	mutex     sync.Mutex
	logs      map[string]*btree.BTree
	committed map[string]int
	next      int
}

func NewStore() *Store {
	return &Store{
		logs:      make(map[string]*btree.BTree),
		committed: make(map[string]int),
	}
}

// Append adds msg at the end of the log of key and returns its offset.
func (s *Store) Append(key string, msg int) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	log, ok := s.logs[key]
	if !ok {
		log = btree.New(8)
		s.logs[key] = log
	}

	offset := s.next
	s.next++
	log.ReplaceOrInsert(Entry{Offset: offset, Msg: msg})

	return offset
}

// Poll returns the entries of the log of key whose offset is at least from, by
// ascending offset. The result is empty, not nil, for an unknown key.
func (s *Store) Poll(key string, from int) []Entry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	res := []Entry{}
	log, ok := s.logs[key]
	if !ok {
		return res
	}
	log.AscendGreaterOrEqual(Entry{Offset: from}, func(i btree.Item) bool {
		res = append(res, i.(Entry))
		return true
	})
	return res
}

// Commit records that the log of key was processed up to offset. A commit
// below the current one is ignored.
func (s *Store) Commit(key string, offset int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if cur, ok := s.committed[key]; ok && cur >= offset {
		return
	}
	s.committed[key] = offset
}

// Committed returns the committed offset of key, or a KeyNotFound StoreErr.
func (s *Store) Committed(key string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	offset, ok := s.committed[key]
	if !ok {
		return 0, common.NewStoreErr("CommittedOffsets", common.KeyNotFound, key)
	}
	return offset, nil
}

// Len returns the number of entries in the log of key.
func (s *Store) Len(key string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	log, ok := s.logs[key]
	if !ok {
		return 0
	}
	return log.Len()
}

// Keys returns the number of logs.
func (s *Store) Keys() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.logs)
}
