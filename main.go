// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/runi-launcher/runi/cmd/runi"

func main() {
	cmd.Execute()
}
