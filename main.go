package main

import "github.com/KaramelBytes/countrydash/cmd"

func main() {
	cmd.Execute()
}
