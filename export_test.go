package a4doc

// ParseCount reports how many sources were actually parsed, as opposed to
// served from the memo, so tests can assert on cache behavior.
func (c *Cache) ParseCount() int {
	return c.parses
}
