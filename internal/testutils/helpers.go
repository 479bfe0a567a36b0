package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// Separator splits words on the copy machine's input tape.
const Separator = "#"

// CopyInput is the canonical input of the copy machine.
var CopyInput = []string{"1", "0", "1", "#", "1", "1"}

// CopyRules returns the three-tape copy machine: tape 0 is copied verbatim to
// tape 1, tape 2 is left untouched. It accepts on a double separator or at
// the end of the input.
func CopyRules(cfg domain.Config) []domain.Rule {
	check := domain.NewState("q_check")
	wild := cfg.Wildcard

	return dsl.New(cfg).
		Loop(cfg.Start, dsl.R("1", "1"), dsl.R(wild, "1"), dsl.SWild(cfg)).
		Loop(cfg.Start, dsl.R("0", "0"), dsl.R(wild, "0"), dsl.SWild(cfg)).
		Rule(cfg.Start, check, dsl.R(Separator, Separator), dsl.R(wild, Separator), dsl.SWild(cfg)).
		Rule(check, cfg.Start, dsl.R("1", "1"), dsl.R(wild, "1"), dsl.SWild(cfg)).
		Rule(check, cfg.Start, dsl.R("0", "0"), dsl.R(wild, "0"), dsl.SWild(cfg)).
		Rule(check, cfg.End, dsl.S(Separator, Separator), dsl.SWild(cfg), dsl.SWild(cfg)).
		Rule(cfg.Start, cfg.End, dsl.S(cfg.Blank, cfg.Blank), dsl.SWild(cfg), dsl.SWild(cfg)).
		MustBuild()
}

// CopyTapes returns fresh input, output and scratch tapes with their heads.
func CopyTapes(cfg domain.Config, input ...string) ([]*domain.Tape, []*domain.Head) {
	tapes := []*domain.Tape{cfg.NewTape(input...), cfg.NewTape(), cfg.NewTape()}
	return tapes, domain.NewHeads(len(tapes))
}

// WriteFile writes content to name inside a fresh temp dir and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture")
	return path
}

// CopyDefinitionYAML is the copy machine as a definition document.
const CopyDefinitionYAML = `name: copy
blank: "_"
wildcard: "*"
start: q_start
end: q_end
max_steps: 1000
output_tape: 1
tapes:
  - [1, 0, 1, "#", 1, 1]
  - []
  - []
rules:
  - from: q_start
    to: q_start
    actions:
      - {read: 1, write: 1, move: R}
      - {read: "*", write: 1, move: R}
      - {read: "*", write: "*", move: S}
  - from: q_start
    to: q_start
    actions:
      - {read: 0, write: 0, move: R}
      - {read: "*", write: 0, move: R}
      - {read: "*", write: "*", move: S}
  - from: q_start
    to: q_check
    actions:
      - {read: "#", write: "#", move: R}
      - {read: "*", write: "#", move: R}
      - {read: "*", write: "*", move: S}
  - from: q_check
    to: q_start
    actions:
      - {read: 1, write: 1, move: R}
      - {read: "*", write: 1, move: R}
      - {read: "*", write: "*", move: S}
  - from: q_check
    to: q_start
    actions:
      - {read: 0, write: 0, move: R}
      - {read: "*", write: 0, move: R}
      - {read: "*", write: "*", move: S}
  - from: q_check
    to: q_end
    actions:
      - {read: "#", write: "#", move: S}
      - {read: "*", write: "*", move: S}
      - {read: "*", write: "*", move: S}
  - from: q_start
    to: q_end
    actions:
      - {read: "_", write: "_", move: Stay}
      - {read: "*", write: "*", move: stay}
      - {read: "*", write: "*", move: s}
`
