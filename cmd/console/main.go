package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-care-console/gateway"
	"github.com/jrsteele09/go-care-console/internal/config"
	"github.com/jrsteele09/go-care-console/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running console: %s\n", err)
	}
	log.Printf("Console closed\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c)
	displayAppname(c.GetAppName())

	gw, err := gateway.New(c.GetServiceBaseURL(),
		gateway.WithHTTPClient(&http.Client{Timeout: c.GetUploadTimeout()}))
	if err != nil {
		return fmt.Errorf("gateway.New: %w", err)
	}

	store, err := session.NewFileStore(c.GetDataFolder())
	if err != nil {
		return fmt.Errorf("session.NewFileStore: %w", err)
	}

	app := newConsoleApp(c, gw, store)
	return app.Run(context.Background())
}

func configureLogging(c config.Config) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
