// Package expr implements a small restricted expression language used for
// task enablement conditions and conditional value declarations.
//
// Expressions are JavaScript-like: literals, identifiers resolved against a
// context mapping, arithmetic/comparison/logical operators, member and index
// access, and a fixed allow-list of string/array methods (includes,
// startsWith, endsWith, toLowerCase, toUpperCase, trim) plus the length
// property. There is no assignment, no user function definition, and no
// access to anything outside the supplied context, so evaluating untrusted
// condition strings cannot execute arbitrary code.
//
// Evaluation has two modes. Strict mode reports any lex, parse, or runtime
// failure as false (logged unless silenced). Lazy mode additionally maps an
// unresolved-identifier failure to true; it exists only for enablement
// pre-checks taken before asynchronously resolved values are available, and
// the final authoritative decision is always a strict evaluation against
// the fully resolved context.
package expr
