package main

import "github.com/Norgate-AV/scriptbin/cmd"

func main() {
	cmd.Execute()
}
