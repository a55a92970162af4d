// Package closer groups resources that need closing at shutdown so main
// can tear them down in one call.
package closer

import "errors"

type (
	Closer interface {
		Close() error
	}

	CloserGroup struct {
		closers []Closer
	}
)

func NewCloserGroup(closers ...Closer) *CloserGroup {
	return &CloserGroup{
		closers: closers,
	}
}

// Add appends a resource to the group. Resources close in the order they
// were added.
func (c *CloserGroup) Add(closer Closer) {
	c.closers = append(c.closers, closer)
}

// Close closes every resource in the group. All resources are attempted
// even when earlier ones fail; the errors are joined.
func (c *CloserGroup) Close() error {
	var errs []error

	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
