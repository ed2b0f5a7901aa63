package common

import (
	"errors"
	"fmt"

	"gacha/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to the Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
	// Expected marks errors caused by the user, logged at info
	Expected bool
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Expected:    true,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: MessageSomethingWrong,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// FromServiceError maps service errors to the message the user should see
func FromServiceError(err error, logMessage string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		return &BotError{
			UserMessage: MessageInsufficientFunds,
			LogMessage:  logMessage,
			Err:         err,
			Expected:    true,
		}
	case errors.Is(err, service.ErrInvalidQuery):
		return &BotError{
			UserMessage: MessageMissingQuery,
			LogMessage:  logMessage,
			Err:         err,
			Expected:    true,
		}
	default:
		return NewSystemError(err, logMessage)
	}
}

// HandleError logs err with the command context and returns the reply for the user
func HandleError(cmd Command, err error) []*discordgo.MessageSend {
	botErr := FromServiceError(err, "Command failed")

	entry := log.WithFields(log.Fields{
		"request_id":   cmd.RequestID,
		"user_id":      cmd.UserID,
		"guild_id":     cmd.GuildID,
		"command":      cmd.Keyword,
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
		"storage":      errors.Is(err, service.ErrStorage),
	})
	if botErr.Expected {
		entry.Info(botErr.LogMessage)
	} else {
		entry.Error(botErr.LogMessage)
	}

	return TextReply(botErr.UserMessage)
}
