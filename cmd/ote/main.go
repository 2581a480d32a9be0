package main

import "github.com/OpenTraceLab/OpenTraceEdit/cmd/ote/cmd"

func main() {
	cmd.Execute()
}
