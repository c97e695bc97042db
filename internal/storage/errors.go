package storage

import "errors"

// ErrCorruptRecord marks a local blob that was present but could not be
// decoded. Callers can distinguish it from "absent" (nil, nil) and decide
// whether to surface it or recover by treating the key as empty.
var ErrCorruptRecord = errors.New("corrupt local record")
