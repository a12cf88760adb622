package cmd

import (
	"fmt"
)

const banner = `
 __      __   _          ___
 \ \    / /__(_)__ ___  | _ \_  _ _ _  _ _  ___ _ _
  \ \/\/ / _ \ / _/ -_) |   / || | ' \| ' \/ -_) '_|
   \_/\_/\___/_\__\___| |_|_\\_,_|_||_|_||_\___|_|

`

func printBanner() {
	fmt.Printf("\x1b[36m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Voice Data Collection Service - Version %s\x1b[0m\n\n", Version)
}
