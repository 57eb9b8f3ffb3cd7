package main

import "github.com/nikonufrienko/editor-packager/cmd/editor-packager/cmd"

func main() {
	cmd.Execute()
}
