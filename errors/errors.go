package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrKeyNotFound    = fmt.Errorf("key not found")
	ErrRelayClosed    = fmt.Errorf("relay closed")
	ErrNotSignedIn    = fmt.Errorf("no profile signed in")
	ErrUnknownCommand = fmt.Errorf("unknown command")
	ErrUnknownBackend = fmt.Errorf("unknown backend")
)
