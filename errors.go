package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exclipError is a wrapper around error adding a reason for the user.
type exclipError struct {
	err    error
	reason string
}

func (e exclipError) Error() string {
	return e.err.Error()
}

func (e exclipError) Unwrap() error {
	return e.err
}

func handleError(err error) {
	writeError(os.Stderr, err)
}

func writeError(w io.Writer, err error) {
	format := "\n%s\n"

	var args []interface{}
	var exErr exclipError
	if errors.As(err, &exErr) {
		format += "%s\n\n"
		args = []interface{}{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorHeader.String(), exErr.reason),
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
		logger.Println(exErr.Error() + " reason: " + exErr.reason)
	} else {
		args = []interface{}{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	}
	_, _ = fmt.Fprintf(w, format, args...)
}
