// Package main is the entry point for the scholarlens CLI.
package main

import (
	"github.com/huangsam/scholarlens/cmd"
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/internal/history"
)

func main() {
	defer history.CloseHistory()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Cannot stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot start scholarlens", err)
	}
}
