// Command mirror inspects the types registered with the mirror library.
package main

import "github.com/mesh-intelligence/mirror/internal/cli"

func main() {
	cli.Execute()
}
