package main

import (
	"fmt"
	"os"

	"github.com/shouni/ok-face-mixer/pkg/cli"
)

func main() {
	if err := cli.NewCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
