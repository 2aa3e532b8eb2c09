package main

import "github.com/mdillard/todoapi/internal/cli"

func main() {
	cli.Execute()
}
