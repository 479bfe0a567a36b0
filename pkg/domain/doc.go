/*
Package domain contains the core vocabulary of the Turing machine simulator.

It defines the entities a transition table is built from and the values a run
produces. The package is kept pure: no I/O, no persistence, no package-level
mutable configuration. Reserved symbols travel in an explicit Config value.

# Key Entities

  - Config: the blank and wildcard symbols plus the canonical start/end states.
  - State: a named node with start/end flags; compared structurally.
  - Direction: Left, Right or Stay, each with a signed head displacement.
  - Action: one tape's (read, write, move) contribution to a Rule.
  - Rule: a transition from one State to the next over an ordered list of Actions.
  - Tape and Head: the sparse, unbounded track and its read/write position.
  - SimulationResult: what a run reports back to its caller.
*/
package domain
