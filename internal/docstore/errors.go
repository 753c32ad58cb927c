package docstore

import "fmt"

// Operation names carried by StorageError.
const (
	OpInsert = "insert"
	OpFind   = "find"
	OpDecode = "decode"
	OpPing   = "ping"
)

// StorageError is returned for any connectivity, read or write failure.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("docstore %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("docstore %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
