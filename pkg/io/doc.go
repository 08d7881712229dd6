// Package io reads room programs and writes solved results.
//
// # Room Programs
//
// A room program is a CSV file with a header row followed by one room per
// row: the room name in the first column and the requested area in square
// metres in the second. Extra columns are ignored.
//
//	name,area_m2
//	Living Room,20
//	Master Bedroom,16
//	Kitchen,12
//
// Blank rows and rows missing either field are skipped silently. Rows with
// an unparsable or non-positive area are skipped with a warning naming the
// row, so a single typo never aborts the run. Use [ImportProgram] for a
// file path or [ReadProgram] for any io.Reader.
//
// # Results
//
// [WriteResults] encodes the solved rooms as an indented JSON array that
// [ReadResults] decodes again. Actual areas are emitted for convenience and
// recomputed from the dimensions on read.
//
// # Optimization Log
//
// [WriteLog] produces the plain-text summary printed after a run: module,
// wall statistics, area accuracy and the change history of the optimizer.
package io
