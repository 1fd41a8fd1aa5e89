// students-cli talks to a running students-api over gRPC.
//
//	students-cli create --name Alice --email alice@x.edu --age 20 --major CS --gpa 3.8
//	students-cli list --page-size 5
//	students-cli demo
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
