package cache

import "fmt"

// orderKeyVersion changes whenever the cached order-list encoding does, so
// stale entries are never decoded.
const orderKeyVersion = 1

// OrdersKeyOpts identifies a materialized elimination-order set.
type OrdersKeyOpts struct {
	Candidates int
	Limit      int
	Seed       uint64
}

// Keyer builds cache keys.
type Keyer interface {
	// OrdersKey returns the key of an order set.
	OrdersKey(opts OrdersKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OrdersKey returns e.g. "orders:v1:c11:l100000:s1".
func (DefaultKeyer) OrdersKey(opts OrdersKeyOpts) string {
	return fmt.Sprintf("orders:v%d:c%d:l%d:s%d", orderKeyVersion, opts.Candidates, opts.Limit, opts.Seed)
}
