// Package main is the entry point for the jsinline CLI.
package main

import "jsinline.dev/pkg/jsinline/cmd"

func main() {
	cmd.Execute()
}
