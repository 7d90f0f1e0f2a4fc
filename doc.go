// Package calc implements a small embeddable expression language over
// booleans, 64-bit integers, and 64-bit floats.
//
// Expressions look like C with a few additions. "2 x" and "2(x + 1)" are
// implicit multiplications, but a name followed by an operand is not: "f(x)"
// is a call and "x y" is an error. "a ** b" is exponentiation, and "c ? a : b"
// evaluates exactly one branch. Assignments, including compound ones like
// "n += 1", update variables in place, and commas sequence expressions:
// "a = 1, b = a + 1" results in 2. A macro written "{name}" is a named
// expression evaluated anew each time it is referenced.
//
// Operands of different types are promoted to the higher-ranked type, with
// booleans below integers below floats. Integer overflow and non-finite float
// results are errors rather than silently wrapping values.
//
// Parse an expression once and evaluate it with Evaluate, or keep variables,
// macros, and functions together across evaluations with a Context.
package calc
