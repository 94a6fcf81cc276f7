package main

import "github.com/felixgeelhaar/shotsort/cmd/shotsort/cli"

func main() {
	cli.Execute()
}
