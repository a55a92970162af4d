package retrier

import "time"

// Connect establishes a connection with retry logic.
//
// connector is attempted up to retry times with sleep seconds between
// failed attempts. The first successful value is returned immediately,
// otherwise the last error. retry 0 still performs exactly one attempt.
//
// Example:
//
//	conn, err := retrier.Connect(3, 2, func() (*amqp.Connection, error) {
//	    return amqp.Dial(url)
//	})
func Connect[T any](retry uint8, sleep uint, connector func() (T, error)) (T, error) {
	if retry == 0 {
		retry = 1
	}

	var (
		out T
		err error
	)

	for i := uint8(0); i < retry; i++ {
		out, err = connector()
		if err == nil {
			return out, nil
		}

		time.Sleep(time.Duration(sleep) * time.Second)
	}

	return out, err
}
