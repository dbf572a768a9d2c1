// Package export renders listings as spreadsheet-friendly CSV: a UTF-8 BOM,
// a header row of display labels and one row per record. The same column
// sets drive the table view of the console.
package export
