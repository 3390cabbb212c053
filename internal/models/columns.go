package models

// Pair is one WHEN branch of a CASE clause: the row identifier and the value
// the column takes for that row.
type Pair struct {
	ID    Value
	Value Value
}

// ColumnGroups accumulates (id, value) pairs per column. Columns keep the
// order in which they were first added; pairs keep the order they were added
// in. The zero value is ready to use.
type ColumnGroups struct {
	names  []string
	index  map[string]int
	groups [][]Pair
}

// Add appends a pair to the column's group, creating the group on first use.
func (c *ColumnGroups) Add(column string, id, value Value) {
	if c.index == nil {
		c.index = make(map[string]int)
	}

	idx, ok := c.index[column]
	if !ok {
		idx = len(c.names)
		c.index[column] = idx
		c.names = append(c.names, column)
		c.groups = append(c.groups, nil)
	}
	c.groups[idx] = append(c.groups[idx], Pair{ID: id, Value: value})
}

// Len returns the number of columns.
func (c *ColumnGroups) Len() int { return len(c.names) }

// Range calls fn for every column in first-seen order, stopping early if fn
// returns an error.
func (c *ColumnGroups) Range(fn func(column string, pairs []Pair) error) error {
	for idx, name := range c.names {
		if err := fn(name, c.groups[idx]); err != nil {
			return err
		}
	}
	return nil
}
