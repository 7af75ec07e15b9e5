package main

import "amalgo/cmd"

func main() {
	cmd.Execute()
}
