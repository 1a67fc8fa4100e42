// Package main is the entry point for the refine CLI.
package main

import "refine.dev/pkg/refine/cmd"

func main() {
	cmd.Execute()
}
