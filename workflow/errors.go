package workflow

import "errors"

// ErrMissingOrderIDColumn aborts the run: without an order id column there
// is nothing to reconcile against.
var ErrMissingOrderIDColumn = errors.New("could not find a Sub Order No / Order ID column in the order file")

var errCostColumnsUnresolved = errors.New("cost sheet SKU/cost columns unresolved")
