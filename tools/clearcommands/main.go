// tools/clearcommands — removes all registered slash commands, for use
// when command definitions change shape between deployments
package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	appID := os.Getenv("APP_ID")
	guildID := os.Getenv("GUILD_ID") // empty clears global commands

	if token == "" || appID == "" {
		fmt.Println("ERROR: BOT_TOKEN and APP_ID must be set")
		os.Exit(1)
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		fmt.Printf("Failed to create session: %v\n", err)
		os.Exit(1)
	}

	existing, err := session.ApplicationCommands(appID, guildID)
	if err != nil {
		fmt.Printf("Failed to list commands: %v\n", err)
		os.Exit(1)
	}

	for _, cmd := range existing {
		if err := session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			fmt.Printf("Failed to delete command %s: %v\n", cmd.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Deleted command %s\n", cmd.Name)
	}

	fmt.Printf("Cleared %d commands.\n", len(existing))
}
