/*
Package main is the trivial line-forwarding chat client.

One goroutine copies server lines to stdout while the main loop forwards
stdin lines to the server. All chat behavior lives server-side.
*/
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// clientConfig holds the few settings the client needs.
type clientConfig struct {
	ServerAddr string `envconfig:"SERVER_ADDR" default:"localhost:9001"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg clientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	conn, err := net.Dial("tcp", cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("could not connect to server at %s: %w", cfg.ServerAddr, err)
	}
	defer conn.Close()

	done := make(chan struct{})

	// Server lines to stdout until the connection closes.
	go func() {
		defer close(done)

		serverReader := bufio.NewScanner(conn)
		for serverReader.Scan() {
			fmt.Println(serverReader.Text())
		}
	}()

	// Stdin lines to the server until EOF or the server goes away.
	input := bufio.NewScanner(os.Stdin)
	for input.Scan() {
		if _, err := fmt.Fprintf(conn, "%s\n", input.Text()); err != nil {
			break
		}

		select {
		case <-done:
			return nil
		default:
		}
	}

	_ = conn.Close()
	<-done

	return nil
}
