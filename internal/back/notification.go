package back

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
)

type NotificationRecipientType int

const (
	NotificationRecipientTypeDiscordChannel NotificationRecipientType = 0
	NotificationRecipientTypeDiscordUser    NotificationRecipientType = 1
)

type NotificationType int

const (
	NotificationTypeLobbiesCreated NotificationType = iota
)

// A Notification is an out-of-band message handed to whatever consumes
// GetNotificationsChan. An empty Recipient on a channel notification means
// "the configured announce channel".
type Notification struct {
	RecipientType NotificationRecipientType
	Recipient     string
	Type          NotificationType
	Payload       map[string]interface{}

	body bytes.Buffer
}

func (n *Notification) Printf(str string, args ...interface{}) (int, error) {
	return fmt.Fprintf(&n.body, str, args...)
}

func (n *Notification) Read(p []byte) (int, error) {
	return n.body.Read(p)
}

func NotificationTypeName(typ NotificationType) string {
	switch typ {
	case NotificationTypeLobbiesCreated:
		return "LobbiesCreated"
	default:
		return "invalid"
	}
}

func NotificationRecipientTypeName(typ NotificationRecipientType) string {
	switch typ {
	case NotificationRecipientTypeDiscordChannel:
		return "DiscordChannel"
	case NotificationRecipientTypeDiscordUser:
		return "DiscordUser"
	default:
		return "invalid"
	}
}

// For debugging purposes only.
func (n *Notification) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(
		&buf,
		"type %s, recipient type %s \"%s\"",
		NotificationTypeName(n.Type),
		NotificationRecipientTypeName(n.RecipientType),
		n.Recipient,
	)

	// HACK: Ensure its on one line (and safe to print)
	content, _ := json.Marshal(n.body.String())
	fmt.Fprintf(&buf, ", contents: %s", string(content))

	return buf.String()
}

// sendLobbiesCreatedNotification announces a freshly formed round. It runs
// after the formation commit and is fire and forget: a full channel (or no
// consumer at all) drops the message, it never fails the formation.
func (b *Back) sendLobbiesCreatedNotification(tournament Tournament, lobbies []Lobby) {
	if len(lobbies) == 0 {
		return
	}

	var userIDs []string
	for k := range lobbies {
		for _, participation := range lobbies[k].Participations {
			if participation.Player.UserID.Valid {
				userIDs = append(userIDs, participation.Player.UserID.String)
			}
		}
	}

	notif := Notification{
		RecipientType: NotificationRecipientTypeDiscordChannel,
		Type:          NotificationTypeLobbiesCreated,
		Payload: map[string]interface{}{
			"Tournament": tournament,
			"Lobbies":    lobbies,
			"UserIDs":    userIDs,
		},
	}

	notif.Printf(
		"Round %d of **%s** has started: %d new %s, %d players drafted.\n"+
			"Captains, check your lobby and start picking!",
		lobbies[0].Round,
		tournament.Name,
		len(lobbies),
		pluralizeLobby(len(lobbies)),
		len(lobbies)*LobbySize,
	)

	select {
	case b.notifications <- notif:
	default:
		log.Printf("warning: notification channel full, dropping %s", notif.String())
	}
}

func pluralizeLobby(count int) string {
	if count == 1 {
		return "lobby"
	}

	return "lobbies"
}
