/*
Package turing is a deterministic multi-tape Turing machine simulator.

A machine is a transition table over any number of tapes. Each rule names the
current state, the symbol it expects under every head, and for every tape what
to write and where to move. Rules are tried in definition order and the first
match wins. A run stops when the machine reaches its end state, when no rule
applies, or when its step budget is used up.

Besides the run itself, the simulator produces the canonical unary/binary
encoding of the transition table, so two machines can be compared bit by bit.

# Key Features

  - Deterministic Execution: the same rules and tapes always produce the same result.
  - Wildcards: a reserved symbol matches anything on read and keeps the cell on write.
  - Definition Documents: machines are described in YAML or JSON (see package definition).
  - Run History: finished runs are persisted through a pluggable store (memory or Redis).

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
	)

	func main() {
		sim := turing.New()

		record, err := sim.RunFile(context.Background(), "examples/copy.yaml")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(record.Result.Reason, record.Result.FinalReturnContent)
		fmt.Println(record.Result.EncodedRulesBinary)
	}
*/
package turing
