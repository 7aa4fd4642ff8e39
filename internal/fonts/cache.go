package fonts

import "sync"

// IndexCache holds the compatible-font index for the life of the
// process. It is populated once after the first successful enumeration
// and only dropped by an explicit Invalidate, so callers control when
// the external font tools run again.
type IndexCache struct {
	mu sync.Mutex
	ix *Index
}

// Get returns the cached index, if any.
func (c *IndexCache) Get() (*Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ix, c.ix != nil
}

// Set stores the index.
func (c *IndexCache) Set(ix *Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ix = ix
}

// Invalidate drops the cached index. The next lookup re-enumerates.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ix = nil
}
