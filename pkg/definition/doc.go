// Package definition loads machine definition documents.
//
// A definition document is structured data (YAML or JSON) describing the
// reserved symbols, the input tapes and the transition table of one machine:
//
//	name: copy
//	start: q_start
//	end: q_end
//	output_tape: 1
//	tapes: [["1", "0", "#"], [], []]
//	rules:
//	  - from: q_start
//	    to: q_start
//	    actions:
//	      - {read: "1", write: "1", move: R}
//	      - ...
//
// Documents are decoded in two stages: the raw bytes become a generic map,
// and the map is decoded into a Document with mapstructure. Scalars are weakly
// typed, so a YAML 1 is the symbol "1". Compile turns a Document into a
// validated Program.
package definition
