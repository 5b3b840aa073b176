package loader

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// LoadError aggregates every structural problem found while building an
// arena from a compiled collection, so a caller sees the whole list of
// things wrong with a collection in one failure rather than fixing and
// resubmitting it one error at a time (spec §7 "fail with an aggregated
// error describing every problem found").
type LoadError struct {
	Issues []error
}

func (e *LoadError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return fmt.Sprintf("loader: %d issue(s) loading collection:\n  - %s", len(e.Issues), strings.Join(msgs, "\n  - "))
}

// Unwrap exposes the aggregated issues to errors.Is/errors.As through the
// standard library's multi-error convention (Unwrap() []error).
func (e *LoadError) Unwrap() []error { return e.Issues }

// issueCollector accumulates load errors with their offending entity
// annotated via pkg/errors.Errorf, which preserves a stack trace at the
// point each issue was recorded — useful when a malformed collection comes
// from a build pipeline rather than a human editing JSON by hand.
type issueCollector struct {
	issues []error
}

func (c *issueCollector) addf(format string, args ...any) {
	c.issues = append(c.issues, errors.Errorf(format, args...))
}

func (c *issueCollector) add(err error) {
	if err != nil {
		c.issues = append(c.issues, err)
	}
}

func (c *issueCollector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &LoadError{Issues: c.issues}
}
