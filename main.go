package main

import (
	"os"

	"firescrape/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
