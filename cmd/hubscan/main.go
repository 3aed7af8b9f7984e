package main

import "hubscan/internal/cli"

var version = "0.1.0"

func main() {
	cli.Execute(version)
}
