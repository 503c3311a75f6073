package thread

import (
	"context"

	"github.com/cockroachdb/errors"
)

// WaitForStartup blocks until every thread has begun running its body.
func WaitForStartup(ctx context.Context, threads ...*Thread) error {
	for _, t := range threads {
		if !t.IsStarted() {
			return errors.Wrapf(ErrNotStarted, "thread %q", t.name)
		}

		select {
		case <-t.started:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for thread startup")
		}
	}

	return nil
}

// WaitForFinish blocks until every thread body has returned.
func WaitForFinish(ctx context.Context, threads ...*Thread) error {
	for _, t := range threads {
		if !t.IsStarted() {
			return errors.Wrapf(ErrNotStarted, "thread %q", t.name)
		}

		select {
		case <-t.done:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for thread finish")
		}
	}

	return nil
}
