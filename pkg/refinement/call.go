package refinement

import "context"

// Call is the invocation handed to an Implementation.
type Call struct {
	ctx      context.Context
	ec       *ExecContext
	resolver *Resolver
	dispatch *dispatch
	index    int

	Receiver Value
	Args     []Value
}

// Context returns the context of the dispatch.
func (c *Call) Context() context.Context {
	return c.ctx
}

// Method returns the dispatched method name.
func (c *Call) Method() string {
	return c.dispatch.method
}

// ReceiverType returns the dispatch type of the receiver.
func (c *Call) ReceiverType() TypeRef {
	return c.dispatch.receiverType
}

// Set returns the override set defining the running implementation, or
// nil for base methods.
func (c *Call) Set() *OverrideSet {
	return c.dispatch.chain[c.index].set
}

// Resolution describes the running implementation.
func (c *Call) Resolution() Resolution {
	return c.dispatch.chain[c.index].resolution
}

// Send dispatches a new call from inside the running body. Overrides see
// their sibling overrides here; base methods see only their defining scope.
func (c *Call) Send(receiver Value, method string, args ...Value) (Value, error) {
	return c.resolver.Dispatch(c.ctx, receiver, method, args...)
}

// Super calls the implementation this one shadows: the next outer override
// for the same call, or the base implementation.
func (c *Call) Super(args ...Value) (Value, error) {
	next := c.index + 1
	if next >= len(c.dispatch.chain) {
		return nil, &NoMethodError{Receiver: c.dispatch.receiverType, Method: c.dispatch.method, Super: true}
	}

	return c.resolver.invoke(c.ctx, c.ec, c.dispatch, next, args)
}

// HasSuper reports whether Super would find an implementation.
func (c *Call) HasSuper() bool {
	return c.index+1 < len(c.dispatch.chain)
}
