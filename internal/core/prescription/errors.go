package prescription

import "fmt"

// SearchLookupError is a failed lookup for one query. The resolver logs it and
// moves on; it never reaches the caller.
type SearchLookupError struct {
	Query string
	Err   error
}

func (e *SearchLookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Query, e.Err)
}

func (e *SearchLookupError) Unwrap() error {
	return e.Err
}
