// catalogctl - консольный клиент gRPC поиска по каталогу.
//
//	catalogctl -addr localhost:9090 movie-exists <id>
//	catalogctl -addr localhost:9090 movie <id>
//	catalogctl -addr localhost:9090 user <id>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"catalog-service/internal/clients"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "catalog gRPC address")
	timeout := flag.Duration("timeout", 5*time.Second, "overall timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-addr host:port] movie-exists|movie|user <id>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client, err := clients.NewCatalogClient(*addr, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var out interface{}
	switch cmd, id := flag.Arg(0), flag.Arg(1); cmd {
	case "movie-exists":
		out, err = client.CheckMovieExists(ctx, id)
	case "movie":
		out, err = client.GetMovieInfo(ctx, id)
	case "user":
		out, err = client.GetUser(ctx, id)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
