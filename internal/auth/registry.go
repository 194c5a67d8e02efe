package auth

import (
	"container/list"
	"sync"
	"time"
)

// Registry keeps live sessions by token with a TTL and a size bound. The
// least recently used session is evicted once the bound is exceeded.
type Registry struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	items   map[string]*list.Element
	lru     *list.List
}

type registryItem struct {
	session Session
}

func NewRegistry(maxSize int, ttl time.Duration) *Registry {
	return &Registry{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Put stores identity under token and returns the stored session.
func (r *Registry) Put(token string, identity Identity) Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := Session{Token: token, Identity: identity, ExpiresAt: r.now().Add(r.ttl)}
	if elem, ok := r.items[token]; ok {
		elem.Value = &registryItem{session: session}
		r.lru.MoveToFront(elem)
		return session
	}

	r.items[token] = r.lru.PushFront(&registryItem{session: session})
	if r.maxSize > 0 && r.lru.Len() > r.maxSize {
		if oldest := r.lru.Back(); oldest != nil {
			r.remove(oldest)
		}
	}
	return session
}

// Get returns the live session for token. Expired sessions are dropped.
func (r *Registry) Get(token string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[token]
	if !ok {
		return Session{}, false
	}
	item := elem.Value.(*registryItem)
	if r.now().After(item.session.ExpiresAt) {
		r.remove(elem)
		return Session{}, false
	}
	r.lru.MoveToFront(elem)
	return item.session, true
}

// Delete reports whether a session was removed.
func (r *Registry) Delete(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[token]
	if !ok {
		return false
	}
	r.remove(elem)
	return true
}

// CleanExpired removes expired sessions and returns how many were removed.
func (r *Registry) CleanExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var expired []*list.Element
	for elem := r.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*registryItem).session.ExpiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		r.remove(elem)
	}
	return len(expired)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lru.Len()
}

func (r *Registry) remove(elem *list.Element) {
	delete(r.items, elem.Value.(*registryItem).session.Token)
	r.lru.Remove(elem)
}
