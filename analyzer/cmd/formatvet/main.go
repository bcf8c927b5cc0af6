// Command formatvet runs the compositeformat analyzer standalone or as a
// go vet tool:
//
//	go vet -vettool=$(which formatvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/abiiranathan/go-format-lint/analyzer/formatcheck"
)

func main() {
	singlechecker.Main(formatcheck.Analyzer)
}
