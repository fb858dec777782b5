package main

import "github.com/masmgr/gitsql/cmd"

func main() {
	cmd.Run()
}
