package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/MikhailRaia/readme-cards/cmd/linter/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
