package export

import "errors"

// ErrUnrecognizedFormat reports that an export contained no recognizable
// message header. Parse itself never returns it; callers holding an empty
// Sequence do.
var ErrUnrecognizedFormat = errors.New("could not parse this export: no recognized message headers")
