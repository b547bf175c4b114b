// cmd/veritas/commands.go
package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "factcheck",
		Description: "Verify a statement against published fact checks",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "statement",
				Description: "The statement (or a link) to verify",
				Required:    true,
			},
		},
	},
	{
		Name:        "watch",
		Description: "Monitor a user's messages and alert on false claims",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to monitor",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to monitor (defaults to this one)",
				Required:    false,
			},
		},
	},
	{
		Name:        "unwatch",
		Description: "Stop monitoring a channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to stop monitoring (defaults to this one)",
				Required:    false,
			},
		},
	},
	{
		Name:        "watching",
		Description: "List monitored channels and users",
	},
	{
		Name:        "ping",
		Description: "Check bot latency",
	},
	{
		Name:        "status",
		Description: "Show bot status and counters",
	},
	{
		Name:        "help",
		Description: "Show usage help",
	},
}

// RegisterCommands registers all slash commands. With a guild ID the
// commands are guild-scoped and propagate instantly; empty means global.
func RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %v", cmd.Name, err)
		}
	}
	Logger().Info("Registered %d slash commands", len(commands))
	return nil
}

// getOptionString gets a string option from the options array
func getOptionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// getOptionUser gets a user option from the options array
func getOptionUser(s *discordgo.Session, options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.User {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(s)
		}
	}
	return nil
}

// getOptionChannel gets a channel option from the options array
func getOptionChannel(s *discordgo.Session, options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.Channel {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			return opt.ChannelValue(s)
		}
	}
	return nil
}
