package main

import "juniorcars/cmd"

func main() {
	cmd.Execute()
}
