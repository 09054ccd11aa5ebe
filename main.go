package main

import "github.com/xetys/mesos-compose/cmd"

func main() {
	cmd.Execute()
}
