package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		log.Fatal("ijson", "err", err)
	}
}
