// Package pipe chains together multiple error-returning operations, such that the first error is returned immediately.
// A chain also stops once its context is canceled.
package pipe

import "context"

// Op is an error-returning operation, run by a chain
type Op interface {
	Do(ctx context.Context) error
}

// OpFunc is an Op and is interchangeable with the corresponding function type.
// OpFuncs are useful for inlining custom functions as Ops.
type OpFunc func(ctx context.Context) error

// Do runs o
func (o OpFunc) Do(ctx context.Context) error {
	return o(ctx)
}

type chain []Op

// Chain combines each Op into a chain. When executed, each Op is run in-order
// and the first error is returned immediately.
func Chain(ops ...Op) Op {
	return chain(ops)
}

// ChainFuncs is identical to Chain, but takes the more convenient OpFunc type instead
func ChainFuncs(opFuncs ...OpFunc) Op {
	ops := make(chain, len(opFuncs))
	for i := range ops {
		ops[i] = opFuncs[i]
	}
	return ops
}

func (c chain) Do(ctx context.Context) error {
	for _, op := range c {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.Do(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ErrIf returns 'err' if 'cond' is true, nil otherwise
func ErrIf(cond bool, err error) error {
	if cond {
		return err
	}
	return nil
}
