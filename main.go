package main

import (
	"os"

	"github.com/scan-io-git/testforge/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
