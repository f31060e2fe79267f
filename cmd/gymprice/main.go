// Package main is the entry point for gymprice, the gym membership pricing calculator.
package main

func main() {
	Execute()
}
