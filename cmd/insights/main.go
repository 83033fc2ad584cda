package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/commands"
	"github.com/insightworks/insights-cli/httpclient"
	"github.com/insightworks/insights-cli/internal/config"
	"github.com/insightworks/insights-cli/session"
	"github.com/insightworks/insights-cli/tokenstore"
	"github.com/insightworks/insights-cli/validation"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	tokenFile, err := cfg.State.TokenFile()
	if err != nil {
		return err
	}
	store, err := tokenstore.NewFileStore(tokenFile)
	if err != nil {
		return err
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.API.BaseURL,
		Store:   store,
		Timeout: cfg.API.Timeout,
		Logger:  &log,
	})
	if err != nil {
		return err
	}

	auth := api.NewAuthClient(client)

	manager, err := session.NewManager(store, auth, client.Logouts(), session.WithLogger(log))
	if err != nil {
		return err
	}
	defer manager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A stored login triggers one best-effort identity refresh at startup.
	manager.Bootstrap(ctx)

	app := &commands.App{
		Config:    cfg,
		Session:   manager,
		Auth:      auth,
		Insights:  api.NewInsightsClient(client),
		Analytics: api.NewAnalyticsClient(client),
		Validator: validation.NewValidator(),
		Out:       os.Stdout,
		Log:       log,
	}

	root := commands.NewRootCmd(app)
	if len(os.Args) == 1 {
		displayAppname(cfg.AppName)
	}
	return root.ExecuteContext(ctx)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
