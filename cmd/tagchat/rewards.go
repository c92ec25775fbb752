package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golden-vcr/tagchat/internal/logging"
	"github.com/golden-vcr/tagchat/internal/prefs"
	"github.com/golden-vcr/tagchat/internal/twitch"
)

type rewardsConfig struct {
	PrefsPath string `env:"TAGCHAT_PREFS_PATH" default:"tagchat.yaml"`
}

func newRewardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewards",
		Short: "Fetch the channel's custom rewards from Twitch and save their names",
		Long: "Fetch the channel's custom rewards from Twitch and save their names to the " +
			"preferences file, so that redemptions show the reward's title. Opens a web " +
			"browser to authorize access as the broadcaster.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := rewardsConfig{}
			twitchConfig := twitch.Config{}
			logConfig := logging.Config{}
			if err := loadConfig(&config, &twitchConfig, &logConfig); err != nil {
				return err
			}
			logger, err := logging.New(logConfig)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := prefs.Open(config.PrefsPath, logger)
			if err != nil {
				return err
			}
			client, err := twitch.NewClientWithUserToken(cmd.Context(), twitchConfig, logger)
			if err != nil {
				return err
			}
			broadcasterId, err := twitch.GetChannelUserId(client, twitchConfig.ChannelName)
			if err != nil {
				return err
			}
			synced, err := twitch.SyncRewardNames(client, broadcasterId, store)
			if err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, reward := range synced {
				fmt.Fprintf(out, "%s\t%s\n", reward.ID, reward.Title)
			}
			fmt.Fprintf(out, "Saved %d reward name(s) to %s.\n", len(synced), config.PrefsPath)
			return nil
		},
	}
}
