// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - enigma enciphers and deciphers text the way the three rotor
// Enigma I did.
package main

import "github.com/bgallie/enigma/cmd"

func main() {
	cmd.Execute()
}
