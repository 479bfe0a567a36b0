package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

func main() {
	targetDir := "examples/machines"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating machine definitions in: %s\n", targetDir)

	cfg := domain.DefaultConfig()

	write(targetDir, "copy.yaml", copyMachine(cfg))
	write(targetDir, "increment.yaml", incrementMachine(cfg))

	fmt.Println("Done. Verify contents in", targetDir)
}

// copyMachine copies the first word of tape 0 onto tape 1. Tape 2 is scratch.
func copyMachine(cfg domain.Config) *definition.Program {
	check := domain.NewState("q_check")
	wild := cfg.Wildcard

	rules := dsl.New(cfg).
		Loop(cfg.Start, dsl.R("1", "1"), dsl.R(wild, "1"), dsl.SWild(cfg)).
		Loop(cfg.Start, dsl.R("0", "0"), dsl.R(wild, "0"), dsl.SWild(cfg)).
		Rule(cfg.Start, check, dsl.R("#", "#"), dsl.R(wild, "#"), dsl.SWild(cfg)).
		Rule(check, cfg.Start, dsl.R("1", "1"), dsl.R(wild, "1"), dsl.SWild(cfg)).
		Rule(check, cfg.Start, dsl.R("0", "0"), dsl.R(wild, "0"), dsl.SWild(cfg)).
		Rule(check, cfg.End, dsl.S("#", "#"), dsl.SWild(cfg), dsl.SWild(cfg)).
		Rule(cfg.Start, cfg.End, dsl.S(cfg.Blank, cfg.Blank), dsl.SWild(cfg), dsl.SWild(cfg)).
		MustBuild()

	return &definition.Program{
		Name:       "copy",
		Config:     cfg,
		Rules:      rules,
		Inputs:     [][]string{{"1", "0", "1", "#", "1", "1"}, {}, {}},
		MaxSteps:   1000,
		OutputTape: 1,
	}
}

// incrementMachine adds one to a binary number, most significant bit first.
func incrementMachine(cfg domain.Config) *definition.Program {
	carry := domain.NewState("q_carry")

	rules := dsl.New(cfg).
		Loop(cfg.Start, dsl.R("0", "0")).
		Loop(cfg.Start, dsl.R("1", "1")).
		Rule(cfg.Start, carry, dsl.L(cfg.Blank, cfg.Blank)).
		Loop(carry, dsl.L("1", "0")).
		Rule(carry, cfg.End, dsl.S("0", "1")).
		Rule(carry, cfg.End, dsl.S(cfg.Blank, "1")).
		MustBuild()

	return &definition.Program{
		Name:       "increment",
		Config:     cfg,
		Rules:      rules,
		Inputs:     [][]string{{"1", "0", "1", "1"}},
		MaxSteps:   1000,
		OutputTape: 0,
	}
}

func write(dir, name string, prog *definition.Program) {
	f, err := os.Create(filepath.Join(dir, name))
	check(err)
	defer f.Close()

	check(definition.FromProgram(prog).Write(f, definition.FormatYAML))
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
