package main

import "github.com/tegorov/flipt/cmd"

func main() {
	cmd.Execute()
}
