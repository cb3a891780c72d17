package sample

import (
	"fmt"
	"io"
	"os"
)

// Greet greets a person by name on standard output.
func Greet(name string) string {
	msg, _ := Fgreet(os.Stdout, name)
	return msg
}

// Fgreet writes the greeting for name to w and returns a confirmation
// message. The confirmation is returned even when the write fails.
func Fgreet(w io.Writer, name string) (string, error) {
	msg := fmt.Sprintf("Greeting sent to %s", name)
	if _, err := fmt.Fprintf(w, "Hello, %s\n", name); err != nil {
		return msg, fmt.Errorf("failed to write greeting: %w", err)
	}
	return msg, nil
}
