package main

import "github.com/prashantgupta17/evaltemplates/cmd"

func main() {
	cmd.Execute()
}
