package retrier

import "time"

// Do executes fn with retry logic.
//
// It is the operation-shaped counterpart of Connect: fn is attempted up to
// retry times with sleep seconds between failed attempts, and the last
// error is returned if every attempt fails.
//
// Parameters:
//   - retry: Maximum number of attempts
//   - sleep: Delay between attempts in seconds
//   - fn: The operation to execute
//
// Returns nil on the first successful attempt, otherwise the last error.
// retry 0 still performs exactly one attempt.
func Do(retry uint8, sleep uint, fn func() error) error {
	if retry == 0 {
		retry = 1
	}

	var err error

	for i := uint8(0); i < retry; i++ {
		if err = fn(); err == nil {
			return nil
		}

		time.Sleep(time.Duration(sleep) * time.Second)
	}

	return err
}
