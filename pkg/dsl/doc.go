/*
Package dsl provides a Go DSL for writing transition tables.

Action shortcuts keep rule definitions short and readable, and the Builder
collects rules in order (order is precedence: the first matching rule wins).

Example usage:

	cfg := domain.DefaultConfig()
	check := domain.NewState("q_check")

	rules, err := dsl.New(cfg).
		Rule(cfg.Start, cfg.Start, dsl.R("1", "1"), dsl.R(cfg.Wildcard, "1")).
		Rule(cfg.Start, check, dsl.R("#", "#"), dsl.R(cfg.Wildcard, "#")).
		Rule(check, cfg.End, dsl.S("#", "#"), dsl.SWild(cfg)).
		Build()
*/
package dsl
