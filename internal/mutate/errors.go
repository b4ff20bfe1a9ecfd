package mutate

import "fmt"

// NotFoundError is reported by lookups. Mutations never return it: an
// operation aimed at a missing id leaves the tree unchanged instead.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
