package main

import "cvrag/internal/cli"

func main() {
	cli.Execute()
}
