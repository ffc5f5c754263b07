package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lawnchairsociety/tenebrae/internal/testclient"
)

func main() {
	serverAddr := flag.String("addr", "localhost:4000", "Telnet address of a running server")
	timeout := flag.Duration("timeout", 5*time.Second, "How long to wait for each expected line")
	verbose := flag.Bool("v", false, "Verbose output - show each command and match")
	flag.Parse()

	fmt.Printf("Running scenarios against %s\n", *serverAddr)
	fmt.Println("Make sure the server is running with -serve!")
	fmt.Println()

	var progress io.Writer
	if *verbose {
		progress = os.Stdout
	}

	results := testclient.RunAll(*serverAddr, *timeout, progress)
	if !testclient.PrintResults(os.Stdout, results) {
		os.Exit(1)
	}
}
