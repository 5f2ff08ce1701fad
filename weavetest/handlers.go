package weavetest

import "github.com/iov-one/tokenswap"

// calls counts Check and Deliver invocations.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler returns the configured results and errors.
type Handler struct {
	calls

	CheckResult tokenswap.CheckResult
	CheckErr    error

	DeliverResult tokenswap.DeliverResult
	DeliverErr    error
}

var _ tokenswap.Handler = (*Handler)(nil)

func (h *Handler) Check(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.CheckResult, error) {
	h.check++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	h.deliver++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

// WriteHandler sets Key to Value on every call and then returns Err. It is
// useful to test that a failed call leaves no state behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ tokenswap.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ tokenswap.Context, db tokenswap.KVStore, _ tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(_ tokenswap.Context, db tokenswap.KVStore, _ tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{}, h.Err
}

// PanicHandler panics with Msg on every call.
type PanicHandler struct {
	Msg string
}

var _ tokenswap.Handler = PanicHandler{}

func (p PanicHandler) Check(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	panic(p.Msg)
}

// Decorator passes the call to the next handler unless an error is
// configured for that call type. Every call is counted.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ tokenswap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return &tokenswap.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return &tokenswap.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that runs h wrapped with d.
func Decorate(h tokenswap.Handler, d tokenswap.Decorator) tokenswap.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   tokenswap.Handler
	decorator tokenswap.Decorator
}

func (d decorated) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
