package main

import "github.com/arkadyv/bellhop/cmd"

func main() {
	cmd.Execute()
}
