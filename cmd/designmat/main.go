// SPDX-License-Identifier: MIT

// Command designmat builds deconvolution design matrices from event files.
//
//	designmat build --events events.yaml --config model.yaml --format csv
//	designmat parse "y~1+cat(cond)*x+spl(speed,5)"
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
