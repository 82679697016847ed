package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/etnz/ascent/lobby"
	"github.com/etnz/ascent/quote"
	"github.com/google/subcommands"
	"github.com/gorilla/mux"
)

// serveCmd runs the HTTP side: the quote proxy and the multiplayer lobby.
type serveCmd struct {
	addr  string
	redis string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the quote proxy and lobby server" }
func (*serveCmd) Usage() string {
	return `ascent serve [-addr <host:port>] [-redis <host:port>]

  Serve the HTTP API:

    GET  /api/alpha-vantage?function=GLOBAL_QUOTE&symbol=IBM
    GET  /lobby?id=<lobbyID>
    POST /join

  Lobby rosters live in Redis when -redis (or REDIS_ADDR) is set, otherwise
  in process memory. Quotes need ALPHAVANTAGE_API_KEY.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on.")
	f.StringVar(&c.redis, "redis", "", "Redis address for lobby storage. Defaults to REDIS_ADDR.")
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loadEnv()

	var kv lobby.KV
	redisAddr := c.redis
	if redisAddr == "" {
		redisAddr = os.Getenv("REDIS_ADDR")
	}
	if redisAddr != "" {
		kv = lobby.NewRedisKV(redisAddr)
		log.Printf("lobby storage: redis at %s", redisAddr)
	} else {
		kv = lobby.NewMemKV()
		log.Printf("lobby storage: in-memory, rosters are lost on restart")
	}

	r := mux.NewRouter()
	r.Handle("/api/alpha-vantage", quote.Handler(quote.NewClient(os.Getenv("ALPHAVANTAGE_API_KEY")))).Methods(http.MethodGet)
	lobby.Routes(r, lobby.NewStore(kv))

	log.Printf("listening on %s", c.addr)
	if err := http.ListenAndServe(c.addr, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
