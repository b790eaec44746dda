package wise_test

import (
	"context"
	"sync/atomic"

	"github.com/junioryono/wise"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// Clock is an interface bound with tokens.
type Clock interface {
	Now() int64
}

type fixedClock struct{ t int64 }

func (c fixedClock) Now() int64 { return c.t }

// Counter counts constructions.
type Counter struct {
	ID int64
}

var counterSeq atomic.Int64

func newCounter(context.Context) (*Counter, error) {
	return &Counter{ID: counterSeq.Add(1)}, nil
}

// Service depends on a Counter.
type Service struct {
	Counter *Counter
	Other   *Counter
}

type Wizard struct {
	Wand *Wand
}

type Wand struct {
	Owner *Wizard
}

type Decoration struct {
	Name string
}

// wizardClasses builds the Wizard/Wand pair. Wizard marks itself as the
// dependent when byOwner is true.
func wizardClasses(byOwner bool, opts ...wise.ClassOption) (*wise.Class[*Wizard], *wise.Class[*Wand]) {
	var wizardClass *wise.Class[*Wizard]

	wandClass := wise.NewClass(func(ctx context.Context) (*Wand, error) {
		owner, err := wise.Inject[*Wizard](ctx, wizardClass)
		if err != nil {
			return nil, err
		}
		return &Wand{Owner: owner}, nil
	})

	wizardClass = wise.NewClass(func(ctx context.Context) (*Wizard, error) {
		w := &Wizard{}

		var (
			wand *Wand
			err  error
		)
		if byOwner {
			wand, err = wise.InjectBy[*Wand](ctx, w, wandClass)
		} else {
			wand, err = wise.Inject[*Wand](ctx, wandClass)
		}
		if err != nil {
			return nil, err
		}

		w.Wand = wand
		return w, nil
	}, opts...)

	return wizardClass, wandClass
}

// serviceClass builds a Service whose two counters are resolved separately
// through counter.
func serviceClass(counter wise.Token, opts ...wise.ClassOption) *wise.Class[*Service] {
	return wise.NewClass(func(ctx context.Context) (*Service, error) {
		first, err := wise.Inject[*Counter](ctx, counter)
		if err != nil {
			return nil, err
		}
		second, err := wise.Inject[*Counter](ctx, counter)
		if err != nil {
			return nil, err
		}
		return &Service{Counter: first, Other: second}, nil
	}, opts...)
}
