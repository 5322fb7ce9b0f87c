// SPDX-License-Identifier: MIT

// Command ndkit inspects, regrids and smooths array literals such as
// "{{1,2},{3,4}}" from the command line.
//
// Usage:
//
//	ndkit shape  '{{1,2},{3,4}}'
//	ndkit regrid --to 2 '{1,2,3,4}'
//	ndkit regrid --scale 2,2 '{{...}}'
//	ndkit smooth --fwhm 1.5 --precision 3 '{1,NaN,3}'
//
// A literal of "-" is read from standard input.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ndkit:", err)
		os.Exit(1)
	}
}
