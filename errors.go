package variantset

import "errors"

// ErrCapacityOverflow is reported by TryReserve when the requested
// capacity cannot be represented.
var ErrCapacityOverflow = errors.New("variantset: capacity overflow")
