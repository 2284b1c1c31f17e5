package main

import "github.com/rowalls/uh-internal-project/cmd"

func main() {
	cmd.Execute()
}
