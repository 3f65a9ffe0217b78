package main

import (
	"github.com/mkamada/scanboard/cmd"
)

func main() {
	cmd.Execute()
}
