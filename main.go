package main

import (
	"github.com/pivolan/claims_analyzer/cmd"
)

func main() {
	cmd.Execute()
}
