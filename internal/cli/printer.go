package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultRuleLimit is how many executed rules a summary lists.
const DefaultRuleLimit = 20

var separator = strings.Repeat("=", 80)

// Printer renders run results for humans.
type Printer struct {
	w         io.Writer
	out       *termenv.Output
	RuleLimit int
}

// NewPrinter writes to w, with colours only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return NewPrinterWithProfile(w, profile)
}

// NewPrinterWithProfile writes to w using the given colour profile.
func NewPrinterWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	return &Printer{
		w:         w,
		out:       termenv.NewOutput(w, termenv.WithProfile(profile)),
		RuleLimit: DefaultRuleLimit,
	}
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) colored(s, hex string) string {
	return p.out.String(s).Foreground(p.out.Color(hex)).Bold().String()
}

func (p *Printer) section(title string) {
	p.println()
	p.println(p.out.String("--- " + title + " ---").Bold().String())
}

// Summary prints the outcome of a run and, when available, the final tapes.
func (p *Printer) Summary(res *domain.SimulationResult, tapes []domain.TapeSnapshot) {
	p.println(separator)
	if res.Accepted {
		p.println(p.colored(fmt.Sprintf("✓ ACCEPTED in %d steps", res.Steps), "#22c55e"))
	} else {
		p.println(p.colored(fmt.Sprintf("✗ REJECTED in %d steps (%s)", res.Steps, res.Reason), "#ef4444"))
	}
	p.println(separator)

	p.println()
	p.printf("Initial Input: %s\n", res.InitialInput)
	p.printf("Final Output:  %s\n", res.FinalReturnContent)

	p.section("Executed Rules")
	if len(res.RulesExecuted) == 0 {
		p.println("(No rules executed)")
	}
	for i, r := range res.RulesExecuted {
		if p.RuleLimit > 0 && i == p.RuleLimit {
			p.printf("... (+%d more)\n", len(res.RulesExecuted)-p.RuleLimit)
			break
		}
		p.printf("%d: %s\n", i, r)
	}
	p.printf("Total executed rules: %d\n", res.Steps)

	if len(tapes) > 0 {
		p.section("Tape Contents and Head Positions")
		for i, t := range tapes {
			p.printf("Tape %d: %s\n", i, p.tape(t))
		}
	}

	p.section("Encoding Information")
	p.Mappings(res.EncodedRulesMappings)

	p.section("Binary Encoded Rules")
	p.println(res.EncodedRulesBinary)
	p.println(separator)
}

func (p *Printer) tape(t domain.TapeSnapshot) string {
	var sb strings.Builder
	sb.WriteString("## ")
	lo, hi := t.Window(1)
	for pos := lo; pos <= hi; pos++ {
		if pos == t.Head {
			sb.WriteString(p.colored("["+t.Read(pos)+"]", "#f59e0b"))
			continue
		}
		sb.WriteString(" " + t.Read(pos) + " ")
	}
	sb.WriteString(" ##")
	return sb.String()
}

// Mappings prints the encoding tables sorted by category and key.
func (p *Printer) Mappings(mappings map[string]map[string]string) {
	if len(mappings) == 0 {
		p.println("(No mappings)")
		return
	}
	for _, category := range sortedKeys(mappings) {
		p.printf("%s:\n", category)
		for _, key := range sortedKeys(mappings[category]) {
			p.printf("  %s -> %s\n", key, mappings[category][key])
		}
	}
}

// Trace prints recorded steps.
func (p *Printer) Trace(steps []domain.StepEvent, dropped int) {
	p.section("Trace")
	for _, s := range steps {
		p.printf("%4d  %s -> %s  read [%s] wrote [%s]\n",
			s.Step, s.From.Name, s.To.Name,
			strings.Join(s.Read, " "), strings.Join(s.Written, " "))
	}
	if dropped > 0 {
		p.printf("... (+%d more)\n", dropped)
	}
}

// Decoded prints rules parsed back from a bitstring.
func (p *Printer) Decoded(rules []encoding.EncodedRule) {
	p.section("Decoded Rules")
	for i, r := range rules {
		p.printf("%d: δ(%d, %v) = (%d, %v, %v)\n", i, r.State, r.Reads, r.Next, r.Writes, r.Moves)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
