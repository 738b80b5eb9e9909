package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/server"
)

func main() {
	port := flag.String("port", "7777", "port to serve on")
	debug := flag.Bool("debug", false, "enable debug logging")
	local := flag.Bool("local", false, "play a hand on the terminal instead of serving")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	if *local {
		if err := playLocalGame(*debug); err != nil {
			logger.Fatal("local game failed", "err", err)
		}
		return
	}

	s := server.NewServer(logger)
	if err := s.Start(*port); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}

// playLocalGame runs a terminal table: the human on stdin against two
// calling bots, with every event narrated. Debug additionally dumps the
// full struct of every event.
func playLocalGame(debug bool) error {
	rules := domain.NewTableRules()
	rules.ActionTimeout = 0 // humans think

	table := domain.NewTable("kitchen", rules, nil)
	table.Debug = debug
	table.AddEventHandler(func(event events.Event) {
		fmt.Println(events.Describe(event))
	})

	if _, err := table.SeatPlayer("you", 1000, domain.NewConsoleActor(os.Stdin, os.Stdout)); err != nil {
		return err
	}
	if _, err := table.SeatPlayer("tic", 1000, domain.CallingActor{}); err != nil {
		return err
	}
	if _, err := table.SeatPlayer("tac", 1000, domain.CallingActor{}); err != nil {
		return err
	}

	return table.Run(context.Background())
}
