// Package output renders final value lists and writes them to files.
//
// A [Sink] prints values in one of three formats. The text format quotes
// each value and withholds values longer than the display limit unless the
// sink is configured to print everything. The json and yaml formats emit a
// list of [Item] records.
//
// [Sink.Write] applies the output-file policy: with as many paths as values,
// each value goes to its own path; with fewer paths, the first value goes to
// every path; otherwise nothing is written.
package output
