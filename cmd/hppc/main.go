// Command hppc runs hpp scripts from the command line against a fresh
// in-memory store, for quick testing of scripts bound for a microcontroller
// host.
package main

func main() {
	execute()
}
