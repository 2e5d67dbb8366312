package engine

// Context is the resolved runtime context: an insertion-ordered mapping
// from variable/prompt id to resolved value. After global resolution it is
// shared read-only; tasks extend it via Child for the duration of their own
// evaluation and execution.
type Context struct {
	keys   []string
	values map[string]any
	parent *Context
}

// NewContext creates an empty root context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set binds an id. Re-binding an existing id keeps its original position.
func (c *Context) Set(id string, value any) {
	if _, exists := c.values[id]; !exists {
		c.keys = append(c.keys, id)
	}
	c.values[id] = value
}

// Get looks up an id, falling back to ancestor contexts.
func (c *Context) Get(id string) (any, bool) {
	if v, ok := c.values[id]; ok {
		return v, true
	}
	if c.parent != nil {
		return c.parent.Get(id)
	}
	return nil, false
}

// Child creates a task-scoped extension. Bindings set on the child shadow
// the parent and are discarded with it.
func (c *Context) Child() *Context {
	return &Context{values: make(map[string]any), parent: c}
}

// Keys returns the ids bound directly on this context, in insertion order.
func (c *Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Map flattens the context chain into a plain mapping, nearest binding
// winning, for the evaluator and resolver.
func (c *Context) Map() map[string]any {
	var flat map[string]any
	if c.parent != nil {
		flat = c.parent.Map()
	} else {
		flat = make(map[string]any, len(c.values))
	}
	for _, k := range c.keys {
		flat[k] = c.values[k]
	}
	return flat
}
