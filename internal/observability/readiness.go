package observability

import (
	"context"
	"errors"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// AllReady reports ready only when every checker does.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return readinessSet(checkers)
}

type readinessSet []sharedobs.ReadinessChecker

func (s readinessSet) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, c := range s {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
