package errors

import (
	"fmt"
	"strings"
)

// Format renders the error as a multi-line, human-readable block suitable
// for terminal output and log files.
//
//	ERROR N002 (page): Page construction failed
//
//	  The factory registered for this page identifier returned an error...
//
//	  Hint: Check the page factory registered for "settings"
//
//	  Learn more: https://pagio.dev/docs/errors/N002
func (e *PagioError) Format() string {
	var b strings.Builder

	if e.Code != "" {
		fmt.Fprintf(&b, "ERROR %s (%s): %s\n", e.Code, e.Category, e.Message)
	} else if e.Category != "" {
		fmt.Fprintf(&b, "ERROR (%s): %s\n", e.Category, e.Message)
	} else {
		fmt.Fprintf(&b, "ERROR: %s\n", e.Message)
	}

	if e.Detail != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Detail)
	}

	if e.Wrapped != nil {
		fmt.Fprintf(&b, "\n  Caused by: %v\n", e.Wrapped)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Hint: %s\n", e.Suggestion)
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "\n  Learn more: %s\n", e.DocURL)
	}

	return b.String()
}
