// Package main provides the entry point for the catalog command-line tool.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
