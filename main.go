// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Kalandor01/ProgressAdventure-CSharp-sub001/cmd/contentctl"

func main() {
	cmd.Execute()
}
