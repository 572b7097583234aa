package booking

import "fmt"

// SelectionError reports a reply that could not be matched to an offered slot.
type SelectionError struct {
	Reply   string
	Offered []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("no offered slot matches %q (offered %v)", e.Reply, e.Offered)
}
