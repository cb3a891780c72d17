package sample

import (
	"fmt"
	"io"
)

// Run is the fixture's demo entry point.
func Run(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Hello, world!"); err != nil {
		return err
	}
	result := Add(5, 3)
	if _, err := fmt.Fprintf(w, "Result: %d\n", result); err != nil {
		return err
	}
	return nil
}
