package csvcodec

import "errors"

// ErrUnreadableInput indicates the text to decode could not be read. It is
// distinct from input that decodes to zero records, which is not an error.
var ErrUnreadableInput = errors.New("unreadable input")
