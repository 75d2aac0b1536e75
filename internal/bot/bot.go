package bot

import (
	"log"
	"sync"

	"drafthall/internal/back"
	"drafthall/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Bot pushes the engine's out-of-band notifications to Discord. It never
// feeds anything back into the engine, losing a message loses an announce
// and nothing else.
type Bot struct {
	back *back.Back
	conf *config.Config
	dg   *discordgo.Session
}

func New(back *back.Back, conf *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + conf.DiscordToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		back: back,
		conf: conf,
		dg:   dg,
	}, nil
}

func (bot *Bot) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting Discord notifier")
	wg.Add(1)
	defer wg.Done()

	if err := bot.dg.Open(); err != nil {
		log.Panic(err)
	}

	for {
		select {
		case notif := <-bot.back.GetNotificationsChan():
			if err := bot.sendNotification(notif); err != nil {
				log.Printf("error: unable to send notification: %s", err)
			}
		case <-done:
			if err := bot.dg.Close(); err != nil {
				log.Printf("error: could not close Discord session: %s", err)
			}
			return
		}
	}
}
