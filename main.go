package main

import "github.com/xvierd/doro/cmd"

func main() {
	cmd.Execute()
}
