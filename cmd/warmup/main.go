// Package main provides the warmup CLI entry point.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/cli"
)

func main() {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		cli.SetVersionInfo(info.Main.Version)
	}
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
