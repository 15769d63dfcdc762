package crossattack

// Executor runs fn for every index in [0, n) and waits for all of them.
// Implementations may run indices concurrently and in any order, and return
// the first error encountered.
type Executor interface {
	Map(n int, fn func(i int) error) error
}

// Sequential runs every index in order on the calling goroutine.
type Sequential struct{}

func (Sequential) Map(n int, fn func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}
