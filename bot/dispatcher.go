package bot

import (
	"context"
	"strings"
	"unicode"

	"gacha/bot/common"
	"gacha/service"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Message is the gateway-independent view of an incoming chat message
type Message struct {
	UserID    string
	Username  string
	GuildID   string
	ChannelID string
	Content   string
}

// Dispatcher turns chat messages into replies. It does not send anything.
type Dispatcher struct {
	prefix        string
	ledgerService service.LedgerService
	handlers      map[string]common.Handler
}

// NewDispatcher creates a dispatcher with every chat command registered
func NewDispatcher(prefix string, ledgerService service.LedgerService, gachaService service.GachaService, collectionService service.CollectionService, members common.MemberResolver) *Dispatcher {
	return &Dispatcher{
		prefix:        prefix,
		ledgerService: ledgerService,
		handlers:      registerCommands(prefix, ledgerService, gachaService, collectionService, members),
	}
}

// ParseCommand splits a prefixed message into keyword and arguments.
// ok is false when the message does not start with the prefix.
func ParseCommand(prefix, content string) (keyword string, args string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}

	rest := content[len(prefix):]
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return "", "", false
	}

	keyword = rest
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		keyword, args = rest[:i], rest[i:]
	}
	return strings.ToLower(keyword), strings.TrimSpace(args), true
}

// Handle processes one message and returns the replies to send. Failures
// are logged and already turned into replies; the error is returned for callers
// that want to inspect it.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) ([]*discordgo.MessageSend, error) {
	keyword, args, ok := ParseCommand(d.prefix, msg.Content)
	if !ok {
		return nil, nil
	}

	cmd := common.Command{
		RequestID: uuid.NewString(),
		UserID:    msg.UserID,
		Username:  msg.Username,
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		Keyword:   keyword,
		Args:      args,
	}

	if cmd.GuildID == "" {
		return common.TextReply(common.MessageGuildOnly), nil
	}

	if _, err := d.ledgerService.EnsureInitialized(ctx, cmd.UserID, cmd.Username); err != nil {
		return common.HandleError(cmd, common.NewSystemError(err, "Failed to initialize balance")), err
	}

	handler, found := d.handlers[keyword]
	if !found {
		return nil, nil
	}

	log.WithFields(log.Fields{
		"request_id": cmd.RequestID,
		"user_id":    cmd.UserID,
		"guild_id":   cmd.GuildID,
		"command":    cmd.Keyword,
	}).Debug("Handling command")

	replies, err := handler(ctx, cmd)
	if err != nil {
		return common.HandleError(cmd, err), err
	}
	return replies, nil
}
