package splitview

import tea "charm.land/bubbletea/v2"

// Maker creates column content on demand, for instance when a show request
// names content by id rather than by value.
type Maker interface {
	Make(id string, width, height int) (Content, tea.Cmd)
}

// MakerFunc adapts a function to Maker.
type MakerFunc func(id string, width, height int) (Content, tea.Cmd)

// Make implements Maker.
func (f MakerFunc) Make(id string, width, height int) (Content, tea.Cmd) {
	return f(id, width, height)
}

// CachedMaker returns the same content for the same id, resizing it when
// it is handed out again, so a page re-shown after being replaced keeps its
// state.
type CachedMaker struct {
	maker Maker
	cache map[string]Content
}

// NewCachedMaker wraps maker.
func NewCachedMaker(maker Maker) *CachedMaker {
	return &CachedMaker{
		maker: maker,
		cache: make(map[string]Content),
	}
}

// Make returns the cached content for id or creates it.
func (c *CachedMaker) Make(id string, width, height int) (Content, tea.Cmd) {
	if content, ok := c.cache[id]; ok {
		if sized, ok := content.(Sized); ok {
			sized.SetSize(width, height)
		}
		return content, nil
	}
	content, cmd := c.maker.Make(id, width, height)
	if content != nil {
		c.cache[id] = content
	}
	return content, cmd
}

// Clear drops every cached item.
func (c *CachedMaker) Clear() {
	c.cache = make(map[string]Content)
}

// Remove drops the item cached for id.
func (c *CachedMaker) Remove(id string) {
	delete(c.cache, id)
}

// Has reports whether id is cached.
func (c *CachedMaker) Has(id string) bool {
	_, ok := c.cache[id]
	return ok
}
