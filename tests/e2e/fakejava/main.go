// Command fakejava accepts the wsdl2rest command line in place of a JVM and
// writes the sources the converter would produce for the WSDL.
package main

import (
	"fmt"
	"os"

	"github.com/camelgen/camelgen/internal/adapters/outbound/converter/convertertest"
)

func main() {
	written, err := convertertest.Emulate(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "wsdl2rest:", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println("Generated", path)
	}
}
