package main

// Output formats beyond the record formatter methods.
const (
	FormatTable = "table"
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
