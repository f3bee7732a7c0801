package main

import "log-owl.com/log-owl/cmd"

func main() {
	cmd.Execute()
}
