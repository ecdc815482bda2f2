package table

// Content is an insertion-ordered mapping of column name to column values.
// Overwriting an existing name keeps its original position.
type Content struct {
	keys   []string
	values map[string]interface{}
}

// NewContent creates an empty Content
func NewContent() *Content {
	return &Content{values: make(map[string]interface{})}
}

// Set inserts or overwrites a column
func (c *Content) Set(name string, values interface{}) {
	if _, exists := c.values[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.values[name] = values
}

// Get returns the values stored under name
func (c *Content) Get(name string) (interface{}, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether name is present
func (c *Content) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Delete removes name and reports whether it was present
func (c *Content) Delete(name string) bool {
	if _, ok := c.values[name]; !ok {
		return false
	}
	delete(c.values, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the names in insertion order
func (c *Content) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of entries
func (c *Content) Len() int {
	return len(c.keys)
}

// Clone returns a shallow copy; column slices are shared
func (c *Content) Clone() *Content {
	out := &Content{
		keys:   make([]string, len(c.keys)),
		values: make(map[string]interface{}, len(c.values)),
	}
	copy(out.keys, c.keys)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}
