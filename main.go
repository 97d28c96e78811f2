package main

import "master-sync/cmd"

func main() {
	cmd.Execute()
}
