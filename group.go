package boardagent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// Group is an errgroup.Group with safer defaults for long-running workers:
// panic recovery in Go, and an interruptible Wait keyed to the caller's
// context (typically signal.NotifyContext).
type Group struct {
	*errgroup.Group
	ctx    context.Context
	parent context.Context
}

// NewGroup creates a Group backed by errgroup.WithContext. The derived
// context is cancelled on parent cancellation or the first worker error.
func NewGroup(ctx context.Context) *Group {
	if ctx == nil {
		ctx = context.Background()
	}
	group, groupCtx := errgroup.WithContext(ctx)
	return &Group{Group: group, ctx: groupCtx, parent: ctx}
}

// Go runs fn in an errgroup goroutine with panic recovery. A panic is logged
// to stderr and reported as an error; it does not crash the process.
// Stderr instead of the structured logger: the panic may have come from the
// logger itself.
func (g *Group) Go(name string, fn func(context.Context) error) {
	if g == nil || g.Group == nil || fn == nil {
		return
	}
	g.Group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(os.Stderr, "WARN: %s panicked: %v\n%s\n", name, r, debug.Stack())
				err = fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		return fn(g.ctx)
	})
}

// WaitOrInterrupt waits for all workers, returning early with the parent
// context's error once it is cancelled and the workers have not drained
// within gracePeriod.
func (g *Group) WaitOrInterrupt(gracePeriod time.Duration) error {
	if g == nil || g.Group == nil {
		return nil
	}
	waitCh := make(chan error, 1)
	go func() { waitCh <- g.Group.Wait() }()

	select {
	case err := <-waitCh:
		return normalizeCancel(g.parent, err)
	case <-g.parent.Done():
		if gracePeriod <= 0 {
			return g.parent.Err()
		}
		select {
		case err := <-waitCh:
			return normalizeCancel(g.parent, err)
		case <-time.After(gracePeriod):
			return g.parent.Err()
		}
	}
}

func normalizeCancel(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
