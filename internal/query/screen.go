package query

import "sync"

// Screen tracks the keys observed by the page currently shown to the
// operator. Showing a new page observes its keys before releasing the old
// ones, so keys shared by both pages keep their fetches.
type Screen struct {
	c    *Cache
	mu   sync.Mutex
	page string
	sub  *Subscription
}

func (c *Cache) NewScreen() *Screen {
	return &Screen{c: c}
}

func (s *Screen) Show(page string, keys ...Key) {
	next := s.c.Observe(keys...)

	s.mu.Lock()
	prev := s.sub
	s.page = page
	s.sub = next
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
}

func (s *Screen) Page() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Clear releases the current page without showing another.
func (s *Screen) Clear() {
	s.mu.Lock()
	prev := s.sub
	s.page = ""
	s.sub = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
}
