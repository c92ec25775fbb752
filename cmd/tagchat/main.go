package main

import (
	"fmt"
	"os"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tagchat",
		Short:         "Twitch chat with IRCv3 tags: badges, rewards, subs and whispers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newParseCmd(), newBadgesCmd(), newRewardsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig populates each of the given config structs from environment variables,
// reading a .env file first if one exists
func loadConfig(configs ...any) error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	for _, config := range configs {
		if err := env.Set(config); err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
	}
	return nil
}
