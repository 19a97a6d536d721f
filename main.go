package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/arkanoop/engine"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/game"
)

func main() {
	configPath := flag.String("config", "assets/game.toml", "path to the game configuration")
	flag.Parse()

	appConfig, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	gameConfig, err := game.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}

	g := game.NewArkanoop(appConfig, gameConfig)

	e, err := engine.New(g.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogError("initialization failed: %s", err)
		_ = e.Shutdown()
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the GL context belongs to the main thread, so the signal only stops the loop
	go func() {
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
