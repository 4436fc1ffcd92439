package main

import (
	"github.com/minedata/minesource/cmd"
)

func main() {
	cmd.Execute()
}
