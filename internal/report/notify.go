package report

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers a rendered message somewhere. Callers in the run pipeline
// treat Send as best-effort and discard the error.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Multi fans a message out to every non-nil notifier and aggregates errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, text))
	}
	return err
}
