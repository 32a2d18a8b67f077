// Command urbanvision runs the Urban Vision Angola environmental assistant
// API and provides maintenance commands for its request journal.
package main

func main() {
	Execute()
}
