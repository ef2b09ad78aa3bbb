package painting

import "l14paint/pkg/layout"

// cached is a memoized value. The zero value is empty.
type cached[T any] struct {
	value T
	valid bool
}

func (c *cached[T]) get(compute func() T) T {
	if !c.valid {
		c.value = compute()
		c.valid = true
	}
	return c.value
}

func (c *cached[T]) invalidate() {
	var zero T
	c.value, c.valid = zero, false
}

func (c *cached[T]) isValid() bool {
	return c.valid
}

// optionalRect is a rect that may be absent.
type optionalRect struct {
	rect layout.Rect
	ok   bool
}
