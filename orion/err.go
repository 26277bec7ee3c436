package orion

import "fmt"

// Handle panics with a description if err is not nil. Meant for setup code
// in main functions where there is no sensible way to recover.
func Handle(err error, desc string, args ...any) {
	if err == nil {
		return
	}

	panic(fmt.Errorf("%s: %w", fmt.Sprintf(desc, args...), err))
}
