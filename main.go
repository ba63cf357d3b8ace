package main

import "github.com/synctv-org/authd/cmd"

func main() {
	cmd.Execute()
}
