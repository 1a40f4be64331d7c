package main

import "smash/cli"

func main() {
	cli.Execute()
}
