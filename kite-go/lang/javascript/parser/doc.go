// Package parser is a single pass recursive descent parser for JavaScript.
//
// Besides building the syntax tree the parser performs the static checks
// the grammar calls for: it collects hoisted function and variable
// declarations into the enclosing script or function body, inserts
// semicolons at line breaks, closing braces and the end of input, validates
// destructuring patterns, resolves break and continue targets and rejects
// generators that return values.
//
// Three dialects are supported through Options:
//
//   - ECMA3Only accepts only ECMAScript 3 and rejects accessors, trailing
//     commas in object literals, keywords as property names and catch guards.
//   - ParenFree makes the parentheses around statement heads optional; an
//     unparenthesized head must then be followed by a braced body.
//   - Harmony adds super, object literal methods, computed property names,
//     the .{} extension and the <| operator.
//
// Let bindings, comprehensions, generator expressions, expression closures,
// for each loops and destructuring are always accepted.
//
// The first error aborts the parse; errors are *errors.SyntaxError values
// from the parser/errors package and are never accompanied by a tree.
package parser
