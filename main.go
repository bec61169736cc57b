package main

import "github.com/tranvictor/fundme/cmd"

func main() {
	cmd.Execute()
}
