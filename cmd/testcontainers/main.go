// Command testcontainers brings up the full STYO stack (database,
// Authorizer, api server) in local containers and keeps it running until
// interrupted. Useful for manual poking and frontend development.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/styoin/styo-server/tests/helpers"
)

const usage = `Run the STYO service stack in testcontainers.

Usage:

  testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file with the stack configuration
               (see .env.example). When omitted, the current process
               environment is used as-is.
`

func main() {
	showHelp := flag.Bool("h", false, "show help")
	envFile := flag.String("f", "", "path to the .env file")
	flag.Parse()

	if *showHelp {
		fmt.Print(usage)
		return
	}

	if *envFile != "" {
		log.Printf("Loading environment from %s", *envFile)
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load %s: %v", *envFile, err)
		}
	} else {
		log.Print("No env file given, using the process environment")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var stack *helpers.TestContainers
	go func() {
		var err error
		stack, err = helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to start the container stack: %v", err)
		}
	}()

	sig := <-sigs
	log.Printf("Received %v, terminating the container stack", sig)
	if stack != nil {
		stack.Terminate(nil)
	}
}
