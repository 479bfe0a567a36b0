package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing"
)

// ValidateFile checks that the document at path compiles into a runnable machine.
func ValidateFile(w io.Writer, path string) error {
	prog, err := turing.Compile(path)
	if err != nil {
		return err
	}
	if err := turing.Validate(prog); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d rules over %d tapes. Machine is valid! ✅\n", path, len(prog.Rules), len(prog.Inputs))
	return nil
}
