package main

import "github.com/devbush/social2csv/internal/adapters/cli"

func main() {
	cli.Execute()
}
