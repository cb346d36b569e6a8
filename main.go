package main

import (
	"os"

	"github.com/frittesauce/Eclipse/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
