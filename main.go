// SPDX-License-Identifier: Apache-2.0
package main

import "github.com/marx-labs/marx/cmd"

func main() {
	cmd.Execute()
}
