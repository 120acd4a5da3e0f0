package main

import (
	"github.com/mfreeman/gridledger/internal/cli"
)

func main() {
	cli.Execute()
}
