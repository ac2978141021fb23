package main

import "asset-deps/internal/cli"

func main() {
	cli.Execute()
}
