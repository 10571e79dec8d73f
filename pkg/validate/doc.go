// Package validate holds the guard clauses that stand between raw tool input and a
// transform: lenient number parsing, required text, clamping, dates, argument
// decoding and boundary sanitation.
package validate
