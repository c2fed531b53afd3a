package parallel

import "errors"

// ErrPoolClosed is reported for jobs submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: pool closed")
