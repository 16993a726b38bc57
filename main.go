package main

import "github.com/perarneng/flaggmail/cmd"

func main() {
	cmd.Execute()
}
