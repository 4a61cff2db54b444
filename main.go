package main

import "github.com/soar/mapview/internal/cli"

func main() {
	cli.Execute(getFrontendFS())
}
