package main

import "github.com/sifranet/sifra-wallet/cmd"

func main() {
	cmd.Execute()
}
