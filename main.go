package main

import "github.com/edgeflare/passgen/cmd/passgen"

func main() {
	passgen.Main()
}
