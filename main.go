package main

import "github.com/dotcommander/compfinder/cmd"

func main() {
	cmd.Execute()
}
