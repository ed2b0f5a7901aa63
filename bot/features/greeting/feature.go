package greeting

import (
	"context"
	"fmt"
	"strings"

	"gacha/bot/common"

	"github.com/bwmarrin/discordgo"
)

// CommandInfo describes one command for the help text
type CommandInfo struct {
	Usage       string
	Description string
}

type Feature struct {
	prefix   string
	commands []CommandInfo
}

func New(prefix string, commands []CommandInfo) *Feature {
	return &Feature{
		prefix:   prefix,
		commands: commands,
	}
}

// HandleHello greets the caller by username
func (f *Feature) HandleHello(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	return common.TextReply(fmt.Sprintf("Hello, %s!", cmd.Username)), nil
}

// HandleHelp lists the available commands
func (f *Feature) HandleHelp(ctx context.Context, cmd common.Command) ([]*discordgo.MessageSend, error) {
	var b strings.Builder
	b.WriteString("**Commands**\n")
	for _, c := range f.commands {
		fmt.Fprintf(&b, "`%s%s` %s\n", f.prefix, c.Usage, c.Description)
	}
	return common.TextReply(strings.TrimRight(b.String(), "\n")), nil
}
