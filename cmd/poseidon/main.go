package main

import (
	"fmt"
	"os"
)

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "poseidon: %v\n", err)
		os.Exit(1)
	}
}
