package main

import (
	"fmt"
	"os"

	"github.com/son-ta-minh/ielts-pro-sub004/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
