package retrier

// RetrierOpts configures retry behaviour for operations and connection
// pools: how many attempts and the delay between them in seconds.
type RetrierOpts struct {
	Count    uint
	Interval uint
}

// MultiConnects establishes count connections using connFunc, applying
// the retry options per connection when retrierOpts is not nil. It fails
// fast on the first connection that cannot be established.
func MultiConnects[T any](count uint8, connFunc func() (T, error), retrierOpts *RetrierOpts) ([]T, error) {
	conns := make([]T, count)

	var err error

	for i := range conns {
		if retrierOpts != nil {
			conns[i], err = Connect(uint8(retrierOpts.Count), retrierOpts.Interval, connFunc)
		} else {
			conns[i], err = connFunc()
		}

		if err != nil {
			return nil, err
		}
	}

	return conns, nil
}
