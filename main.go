package main

import (
	"github.com/kylejlin/snafed/cmd"
)

func main() {
	cmd.Execute()
}
