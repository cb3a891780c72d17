package sample

import "embed"

// Sources holds the fixture's own Go files so analysers can work on the
// exact code that is compiled into the binary.
//
//go:embed doc.go greet.go calculate.go process.go point.go run.go sources.go
var Sources embed.FS
