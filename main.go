// Command vislog saves experiment plots and packs program sources for reproducibility.
package main

import "github.com/mouse-blink/vislog/cmd"

func main() {
	cmd.Execute()
}
