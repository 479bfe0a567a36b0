package definition

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// Program is a compiled Document: validated rules plus everything needed to
// set up a machine.
type Program struct {
	Name       string
	Config     domain.Config
	Rules      []domain.Rule
	Inputs     [][]string
	MaxSteps   int
	OutputTape int
}

// Compile validates the document and resolves states, symbols and moves.
// Every problem found is reported; the error is an *domain.AggregateError
// whose entries wrap domain.ErrInvalidDefinition.
func (d *Document) Compile() (*Program, error) {
	var errs []error
	invalid := func(key, reason string, value any) {
		errs = append(errs, &domain.ValidationError{
			Key:    key,
			Reason: reason,
			Value:  value,
			Kind:   domain.ErrInvalidDefinition,
		})
	}

	blank := orDefault(d.Blank, domain.DefaultBlank)
	wildcard := orDefault(d.Wildcard, domain.DefaultWildcard)
	start := orDefault(d.Start, domain.DefaultConfig().Start.Name)
	end := orDefault(d.End, domain.DefaultConfig().End.Name)

	if blank == wildcard {
		invalid("wildcard", "must differ from the blank symbol", wildcard)
	}
	if start == end {
		invalid("end", "must differ from the start state", end)
	}
	if d.MaxSteps < 0 {
		invalid("max_steps", "must not be negative", d.MaxSteps)
	}

	cfg := domain.Config{
		Blank:    blank,
		Wildcard: wildcard,
		Start:    domain.StartState(start),
		End:      domain.EndState(end),
	}
	state := func(name string) domain.State {
		switch name {
		case start:
			return cfg.Start
		case end:
			return cfg.End
		}
		return domain.NewState(name)
	}

	if len(d.Tapes) == 0 {
		invalid("tapes", "at least one tape is required", nil)
	}
	inputs := make([][]string, len(d.Tapes))
	for i, tape := range d.Tapes {
		for j, sym := range tape {
			if sym == "" {
				invalid(fmt.Sprintf("tapes[%d][%d]", i, j), "empty symbol", nil)
			}
		}
		inputs[i] = slices.Clone(tape)
	}

	output := len(d.Tapes) - 1
	if d.OutputTape != nil {
		output = *d.OutputTape
		if output < 0 || output >= len(d.Tapes) {
			invalid("output_tape", "out of range", output)
		}
	}

	rules := make([]domain.Rule, 0, len(d.Rules))
	for i, rd := range d.Rules {
		key := fmt.Sprintf("rules[%d]", i)
		if rd.From == "" {
			invalid(key+".from", "required", nil)
		}
		if rd.To == "" {
			invalid(key+".to", "required", nil)
		}
		if len(rd.Actions) != len(d.Tapes) {
			invalid(key+".actions", fmt.Sprintf("expected %d actions, one per tape", len(d.Tapes)), len(rd.Actions))
		}

		actions := make([]domain.Action, len(rd.Actions))
		for j, ad := range rd.Actions {
			akey := fmt.Sprintf("%s.actions[%d]", key, j)
			if ad.Read == "" {
				invalid(akey+".read", "required", nil)
			}
			if ad.Write == "" {
				invalid(akey+".write", "required", nil)
			}
			move, err := domain.ParseDirection(ad.Move)
			if err != nil {
				invalid(akey+".move", "expected L, R or S", ad.Move)
			}
			actions[j] = domain.NewAction(ad.Read, ad.Write, move)
		}
		rules = append(rules, domain.NewRule(state(rd.From), state(rd.To), actions...))
	}

	if err := domain.Aggregate(errs); err != nil {
		return nil, err
	}

	return &Program{
		Name:       d.Name,
		Config:     cfg,
		Rules:      rules,
		Inputs:     inputs,
		MaxSteps:   d.MaxSteps,
		OutputTape: output,
	}, nil
}

// Tapes creates fresh tapes loaded with the program's inputs, and their heads.
// Each call returns independent tapes, so one Program can drive many runs.
func (p *Program) Tapes() ([]*domain.Tape, []*domain.Head) {
	tapes := make([]*domain.Tape, len(p.Inputs))
	for i, input := range p.Inputs {
		tapes[i] = p.Config.NewTape(input...)
	}
	return tapes, domain.NewHeads(len(tapes))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
