package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/encoding"
)

// EncodeOptions configures EncodeFile.
type EncodeOptions struct {
	Path   string
	Decode bool // parse the bitstring back and print the numeric rules
	JSON   bool
}

// EncodeFile prints the canonical encoding of the document's rule set.
func EncodeFile(w io.Writer, opts EncodeOptions) error {
	prog, err := turing.Compile(opts.Path)
	if err != nil {
		return err
	}
	if err := turing.Validate(prog); err != nil {
		return err
	}

	enc, err := turing.New().Encode(prog.Rules)
	if err != nil {
		return err
	}

	var decoded []encoding.EncodedRule
	if opts.Decode && enc.Binary != "" {
		decoded, err = encoding.Decode(enc.Binary)
		if err != nil {
			return fmt.Errorf("encoded stream does not decode: %w", err)
		}
	}

	if opts.JSON {
		out := struct {
			*turing.Encoding
			Decoded []encoding.EncodedRule `json:"decoded,omitempty"`
		}{enc, decoded}
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(out)
	}

	p := NewPrinter(w)
	p.println(enc.Binary)
	p.section("Encoding Information")
	p.Mappings(enc.Mappings)
	if opts.Decode {
		p.Decoded(decoded)
	}
	return nil
}
