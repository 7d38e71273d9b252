// Package main is the entry point for the exampack CLI.
package main

import "exampack.dev/pkg/exampack/cmd"

func main() {
	cmd.Execute()
}
