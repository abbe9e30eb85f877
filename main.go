package main

import "github.com/itsmostafa/codepdf/cmd"

func main() {
	cmd.Execute()
}
