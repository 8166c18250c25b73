// Package main provides the attune CLI.
package main

import "github.com/mesh-intelligence/attune/internal/cli"

func main() {
	cli.Execute()
}
