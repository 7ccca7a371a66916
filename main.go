// Package main is the entry point for the lckmetrics CLI tool, which analyzes
// League of Legends esports match data.
package main

import "github.com/pable/lck-metrics/cmd"

func main() {
	cmd.Execute()
}
