package definition

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
	"gopkg.in/yaml.v3"
)

// FromProgram converts a program back into a document. Compiling the result
// yields an equivalent program.
func FromProgram(p *Program) *Document {
	output := p.OutputTape
	doc := &Document{
		Name:       p.Name,
		Blank:      p.Config.Blank,
		Wildcard:   p.Config.Wildcard,
		Start:      p.Config.Start.Name,
		End:        p.Config.End.Name,
		MaxSteps:   p.MaxSteps,
		OutputTape: &output,
		Tapes:      make([][]string, len(p.Inputs)),
		Rules:      make([]RuleDoc, len(p.Rules)),
	}
	for i, input := range p.Inputs {
		doc.Tapes[i] = append([]string{}, input...)
	}
	for i, r := range p.Rules {
		actions := make([]ActionDoc, len(r.Actions))
		for j, a := range r.Actions {
			actions[j] = ActionDoc{Read: a.Read, Write: a.Write, Move: moveCode(a.Move)}
		}
		doc.Rules[i] = RuleDoc{From: r.Current.Name, To: r.Next.Name, Actions: actions}
	}
	return doc
}

func moveCode(d domain.Direction) string {
	switch d {
	case domain.Left:
		return "L"
	case domain.Right:
		return "R"
	}
	return "S"
}

// Write serializes the document in the given format.
func (d *Document) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}
