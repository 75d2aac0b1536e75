package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"drafthall/internal/back"
	"drafthall/internal/bot"
	"drafthall/internal/config"
	"drafthall/internal/web"
)

func serve(conf *config.Config) error {
	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	b, err := back.New("sqlite3", conf.SQLDSN)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	server := web.NewServer(b, conf.ListenAddr)
	go server.Serve(&wg, done)

	if conf.DiscordToken != "" {
		notifier, err := bot.New(b, conf)
		if err != nil {
			return err
		}
		go notifier.Serve(&wg, done)
	} else {
		log.Print("warning: no Discord token configured, notifications will be dropped")
	}

	sig := <-signaled
	log.Printf("received signal %d", sig)

	close(done)
	wg.Wait()
	log.Print("shutdown complete")

	return nil
}
