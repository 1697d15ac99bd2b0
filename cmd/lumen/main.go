// Lumen renders an animated liquid body in the terminal.
package main

func main() {
	Execute()
}
