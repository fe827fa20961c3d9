package scaffold

import "errors"

// ErrUnsupportedValue is returned by FromValue for values that cannot
// describe a layout.
var ErrUnsupportedValue = errors.New("unsupported layout value")
