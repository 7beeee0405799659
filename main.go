// Package main is the entry point for the traduco CLI.
package main

import "traduco.dev/pkg/traduco/cmd"

func main() {
	cmd.Execute()
}
