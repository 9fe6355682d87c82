package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/event-registration/internal/common/bootstrap"
	srv "github.com/AlibekovAA/event-registration/internal/common/server"
)

func main() {
	app, err := bootstrap.NewAppFromEnv(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	server := srv.NewServer(srv.DefaultServerConfig(app.Config.HTTPPort), app.Handler)

	hooks := append(app.Hooks, func(context.Context) error {
		return app.Log.Close()
	})

	srv.ExitOnError(app.Log, srv.StartWithGracefulShutdownAndHooks(server, app.Log, "event-registration", hooks))
}
