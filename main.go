package main

import "github.com/pulsesense/ppg-monitor/cmd"

func main() {
	cmd.Execute()
}
