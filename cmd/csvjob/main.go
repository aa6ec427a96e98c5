// csvjob reads a delimited text file, keeps some of its columns and prints
// the result as YAML.
//
// Usage:
//
//	csvjob <file> [--header] [--separator ,] [--columns a,b] [--config csvjob.yaml] [--dot job.dot] [--verbose]
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
