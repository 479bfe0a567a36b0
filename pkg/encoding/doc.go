/*
Package encoding serializes a rule set into a self-delimiting unary bitstring.

Every field is a unary segment: n zeros followed by m ones. The terminator width
m marks the boundary the segment closes:

	m = 1  next field of the same rule
	m = 2  end of a rule
	m = 3  end of the stream

States, symbols and directions are first numbered by CreateEncodingMappings.
The start state is 1, inner states follow in name order, the end state comes
last. Symbols are numbered from 1 in lexicographic order (0 is the delimiter).
Directions are fixed: Right=1, Left=2, Stay=3.

The stream is "111" followed, per rule, by the current state, the read symbols,
the next state, the write symbols and the moves.

All functions are pure and safe for concurrent use.
*/
package encoding
