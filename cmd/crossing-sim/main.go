// Command crossing-sim drives the crossing controller on host fake pins from
// a scripted virtual clock.
package main

func main() {
	Execute()
}
