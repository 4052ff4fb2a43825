package scraper

// Frontier is a FIFO queue of page URLs with lifetime deduplication. A URL
// that has ever been added is never accepted again, whether it is still
// queued, in flight, or already finished.
type Frontier struct {
	queue []string
	seen  map[string]struct{}
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Add enqueues url unless it was seen before. It reports whether the URL
// was accepted.
func (f *Frontier) Add(url string) bool {
	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Next dequeues the oldest pending URL. It reports false when the frontier
// is drained.
func (f *Frontier) Next() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Pending returns the number of queued URLs.
func (f *Frontier) Pending() int {
	return len(f.queue)
}

// Seen returns the number of URLs ever accepted.
func (f *Frontier) Seen() int {
	return len(f.seen)
}
