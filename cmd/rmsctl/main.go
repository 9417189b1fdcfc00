package main

import "github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd"

func main() {
	cmd.Execute()
}
