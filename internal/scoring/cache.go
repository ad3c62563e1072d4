package scoring

import (
	"container/list"
	"encoding/json"
	"fmt"
	"sync"
)

// MatchMemo caches match scores by a stable serialization of the
// (requirement, quality) pair. The same pairs recur across many candidate
// comparisons, so this saves re-evaluating identical lookups. Bounded with
// LRU eviction; safe for concurrent use.
type MatchMemo struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List // front = most recently used
	index      map[string]*list.Element
}

type memoEntry struct {
	key   string
	score float64
}

// NewMatchMemo creates a memo holding at most maxEntries scores.
func NewMatchMemo(maxEntries int) *MatchMemo {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MatchMemo{
		maxEntries: maxEntries,
		order:      list.New(),
		index:      make(map[string]*list.Element),
	}
}

// MemoKey builds a stable cache key for a (requirement, quality) pair.
// json.Marshal sorts map keys, so equal documents produce equal keys.
func MemoKey(requirement, quality interface{}) string {
	reqJSON, err := json.Marshal(requirement)
	if err != nil {
		reqJSON = []byte(fmt.Sprintf("%#v", requirement))
	}
	qualJSON, err := json.Marshal(quality)
	if err != nil {
		qualJSON = []byte(fmt.Sprintf("%#v", quality))
	}
	return string(reqJSON) + "|" + string(qualJSON)
}

// Get returns a cached score if present.
func (m *MatchMemo) Get(key string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.index[key]
	if !ok {
		return 0, false
	}
	m.order.MoveToFront(elem)
	return elem.Value.(*memoEntry).score, true
}

// Put stores a score, evicting the least recently used entry when full.
func (m *MatchMemo) Put(key string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.index[key]; ok {
		elem.Value.(*memoEntry).score = score
		m.order.MoveToFront(elem)
		return
	}

	if m.order.Len() >= m.maxEntries {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.index, oldest.Value.(*memoEntry).key)
		}
	}

	m.index[key] = m.order.PushFront(&memoEntry{key: key, score: score})
}

// Len reports the number of cached entries.
func (m *MatchMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// MatchScoreMemoized evaluates a requirement against a quality, consulting
// the memo first. A nil memo falls back to direct evaluation.
func MatchScoreMemoized(memo *MatchMemo, requirement, quality interface{}) float64 {
	if memo == nil {
		return MatchScore(requirement, quality)
	}

	key := MemoKey(requirement, quality)
	if score, ok := memo.Get(key); ok {
		recordMemoHit()
		return score
	}

	score := MatchScore(requirement, quality)
	memo.Put(key, score)
	return score
}
