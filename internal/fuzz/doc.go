// Package fuzztests houses Go fuzz harnesses for the lint pipeline: source
// decoding, the sandboxed analyzers and record collection. The goal is to
// catch panics, hangs and reports that break their invariants on arbitrary
// input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
