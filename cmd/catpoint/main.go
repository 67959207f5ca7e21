package main

import "github.com/DonnaRichards/UdaSecurity/cmd/catpoint/cmd"

func main() {
	cmd.Execute()
}
