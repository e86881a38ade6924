package main

import (
	"github.com/inkfield/inkfield/internal/cli"
)

func main() {
	cli.Execute()
}
