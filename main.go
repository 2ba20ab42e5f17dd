package main

import "mspro-labs/dine-sync/cmd"

func main() {
	cmd.Execute()
}
