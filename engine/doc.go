// Package engine runs pipelines of named text operators over a list of
// values.
//
// A pipeline starts from an ordered list of string values, one per input, and
// folds an ordered list of [Invocation] values over it. Each invocation names
// an [Operator] from a [Registry], an optional index selection, and an
// optional argument.
//
// # Arity
//
// Operators come in two classes, fixed by their [Impl]:
//
//   - [SingleFunc] is called once per selected value. It returns a [Result]
//     holding one replacement value, several values (the first replaces the
//     input and the rest are appended once the step completes), or the
//     removal signal.
//   - [MultiFunc] is called once with the selected sub-list and returns its
//     replacement. With no selection the replacement becomes the whole list.
//     Otherwise the unselected values are kept in order and the replacement is
//     appended after them.
//
// Selections always index the list as it was before the current step.
//
// # Arguments
//
// Arguments are raw text interpreted by a small mini-language:
//
//	a,b,c      sub-arguments, split by [SplitArguments]; \, does not split
//	w3         the position where the third word of the value begins
//	?name      the value of a variable written earlier by the set operator
//	./file     the contents of an existing file ("/" prefixes work too)
//	\n         a newline
//	\e         an empty marker, removed before anything else
//	\?name     a leading backslash is dropped, keeping the rest literal
//
// An invocation without an argument receives [None], which each operator
// treats as its own default. See [Resolver] for the exact resolution rules.
//
// # Sessions
//
// A [Session] carries the variable store, output writer and random source of
// one run. It is passed to every operator call, so nothing in the engine is
// global. An [Executor] creates sessions and plans invocations, rejecting
// unknown operators before any step runs.
//
//	exec := engine.NewExecutor(reg)
//	out, err := exec.Run(ctx, []string{"hello world"}, []engine.Invocation{
//		engine.Call("case", engine.Some("upper")),
//		engine.Call("reverse", engine.None()),
//	})
//	// out == []string{"DLROW OLLEH"}
package engine
