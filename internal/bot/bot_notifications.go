package bot

import (
	"fmt"
	"io"

	"drafthall/internal/back"
)

func (bot *Bot) sendNotification(notif back.Notification) error {
	switch notif.Type {
	case back.NotificationTypeLobbiesCreated:
		return bot.sendLobbiesCreated(notif)
	default:
		return fmt.Errorf("got unknown notification type: %d", notif.Type)
	}
}

func (bot *Bot) sendLobbiesCreated(notif back.Notification) error {
	w := bot.getWriterForNotification(notif)
	if w == nil {
		return nil
	}
	defer w.Flush()

	if _, err := io.Copy(w, &notif); err != nil {
		return err
	}

	return nil
}

func (bot *Bot) getWriterForNotification(notif back.Notification) *channelWriter {
	switch notif.RecipientType {
	case back.NotificationRecipientTypeDiscordUser:
		w, err := newUserChannelWriter(bot.dg, notif.Recipient)
		if err != nil {
			return nil
		}
		return w
	default:
		channelID := notif.Recipient
		if channelID == "" {
			channelID = bot.conf.DiscordAnnounceChannelID
		}
		return newChannelWriter(bot.dg, channelID)
	}
}
