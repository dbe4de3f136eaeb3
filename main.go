package main

import "github.com/theirongolddev/spendfold/cmd"

func main() {
	cmd.Execute()
}
