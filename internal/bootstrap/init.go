package bootstrap

import (
	"context"
	"fmt"
)

// Func is one startup step. Steps run in the order they were added and the
// first error stops the chain.
type Func func(context.Context) error

type Conf func(*Bootstrap)

func WithContext(ctx context.Context) Conf {
	return func(b *Bootstrap) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

type Bootstrap struct {
	ctx  context.Context
	task []Func
}

func New(conf ...Conf) *Bootstrap {
	b := &Bootstrap{ctx: context.Background()}
	for _, c := range conf {
		c(b)
	}
	return b
}

func (b *Bootstrap) Add(f ...Func) *Bootstrap {
	b.task = append(b.task, f...)
	return b
}

// Run stops before the next step once the context is done.
func (b *Bootstrap) Run() error {
	for i, f := range b.task {
		if err := b.ctx.Err(); err != nil {
			return fmt.Errorf("bootstrap: step %d: %w", i+1, err)
		}
		if err := f(b.ctx); err != nil {
			return fmt.Errorf("bootstrap: step %d: %w", i+1, err)
		}
	}
	return nil
}
