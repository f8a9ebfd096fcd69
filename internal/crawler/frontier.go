package crawler

// URLSet is a set of URLs that remembers insertion order.
// The zero value is not usable; call NewURLSet.
type URLSet struct {
	items []string
	index map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{
		items: make([]string, 0),
		index: make(map[string]struct{}),
	}
}

// Add inserts u and reports whether it was new.
func (s *URLSet) Add(u string) bool {
	if _, ok := s.index[u]; ok {
		return false
	}
	s.index[u] = struct{}{}
	s.items = append(s.items, u)
	return true
}

// Contains reports whether u is in the set.
func (s *URLSet) Contains(u string) bool {
	_, ok := s.index[u]
	return ok
}

// Len returns the number of URLs in the set.
func (s *URLSet) Len() int {
	return len(s.items)
}

// Slice returns the URLs in insertion order.
func (s *URLSet) Slice() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// frontier is the FIFO queue of URLs awaiting a visit.
// It may hold duplicates; the engine discards them at dequeue time.
type frontier struct {
	items []string
	head  int
}

func (f *frontier) push(u string) {
	f.items = append(f.items, u)
}

// pop removes and returns the oldest URL. It must not be called on an
// empty frontier.
func (f *frontier) pop() string {
	u := f.items[f.head]
	f.items[f.head] = ""
	f.head++
	if f.head == len(f.items) {
		f.items = f.items[:0]
		f.head = 0
	}
	return u
}

func (f *frontier) len() int {
	return len(f.items) - f.head
}

// clear drops every pending URL and returns how many were dropped.
func (f *frontier) clear() int {
	n := f.len()
	f.items = nil
	f.head = 0
	return n
}
