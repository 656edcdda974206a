package main

import "github.com/simdash/simcar/cmd"

func main() {
	cmd.Execute()
}
