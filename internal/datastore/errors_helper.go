// errors_helper.go: shared error construction for store operations
package datastore

import (
	"fmt"

	"github.com/cvsuagritech/agrisight-go/internal/errors"
)

// dbError wraps a database failure with component and operation context.
// kv pairs are added to the error context verbatim.
func dbError(err error, operation, priority string, kv ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)
	if priority != "" {
		builder = builder.Priority(priority)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		builder = builder.Context(fmt.Sprintf("%v", kv[i]), kv[i+1])
	}
	return builder.Build()
}

// validationError reports caller input rejected before touching the database.
func validationError(msg string, kv ...any) error {
	builder := errors.Newf("%s", msg).
		Component("datastore").
		Category(errors.CategoryValidation)
	for i := 0; i+1 < len(kv); i += 2 {
		builder = builder.Context(fmt.Sprintf("%v", kv[i]), kv[i+1])
	}
	return builder.Build()
}

// priorityForWrite grades write failures. Everything is high priority for now;
// kept as a seam so lock contention can be downgraded later.
func priorityForWrite(err error) string {
	if err == nil {
		return ""
	}
	return errors.PriorityHigh
}
