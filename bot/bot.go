package bot

import (
	"context"
	"fmt"
	"time"

	"gacha/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token          string
	CommandPrefix  string
	CommandTimeout time.Duration
}

type Bot struct {
	config     Config
	session    *discordgo.Session
	dispatcher *Dispatcher
}

func New(config Config, ledgerService service.LedgerService, gachaService service.GachaService, collectionService service.CollectionService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	bot := &Bot{
		config:     config,
		session:    dg,
		dispatcher: NewDispatcher(config.CommandPrefix, ledgerService, gachaService, collectionService, dg),
	}

	// discordgo runs each handler call on its own goroutine
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Connected to Discord")
	})

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.CommandTimeout)
	defer cancel()

	replies, _ := b.dispatcher.Handle(ctx, Message{
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	})

	for _, reply := range replies {
		// The command deadline may already have passed, so sends use discordgo's own timeout
		if _, err := s.ChannelMessageSendComplex(m.ChannelID, reply); err != nil {
			log.WithFields(log.Fields{
				"channel_id": m.ChannelID,
				"user_id":    m.Author.ID,
				"error":      err,
			}).Error("Failed to send reply")
			return
		}
	}
}
