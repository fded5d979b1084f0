// Package health answers the /ready check for the rental API: the store and,
// when configured, the Redis instance behind the mail queue and rate limiter.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Checker pings one backing dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase reports whether the API can serve traffic.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

// NewService takes the checkers of the configured dependencies; nil entries
// stand for optional ones that are switched off and are dropped.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready pings all dependencies at once, so the check takes as long as the
// slowest one. Failures come back in checker order as "<name>: <err>".
func (s *service) Ready(ctx context.Context) error {
	errs := make([]error, len(s.checkers))
	var wg sync.WaitGroup
	for i, ch := range s.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ch.Check(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", ch.Name(), err)
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
