package twitch

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nicklaw5/helix/v2"
)

// Reward is a custom channel point reward
type Reward struct {
	ID    string
	Title string
}

// GetRewards lists the custom channel point rewards configured for a channel
func GetRewards(client RewardReader, broadcasterId string) ([]Reward, error) {
	r, err := client.GetCustomRewards(&helix.GetCustomRewardsParams{
		BroadcasterID: broadcasterId,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get custom rewards: %w", err)
	}
	if r.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got response %d from get custom rewards request: %s", r.StatusCode, r.ErrorMessage)
	}

	rewards := make([]Reward, 0, len(r.Data.ChannelCustomRewards))
	for _, reward := range r.Data.ChannelCustomRewards {
		rewards = append(rewards, Reward{
			ID:    reward.ID,
			Title: strings.TrimSpace(reward.Title),
		})
	}
	return rewards, nil
}

// SyncRewardNames records the title of every custom reward in the given channel as
// its display name. Rewards with a blank title are skipped.
func SyncRewardNames(client RewardReader, broadcasterId string, names RewardNames) ([]Reward, error) {
	rewards, err := GetRewards(client, broadcasterId)
	if err != nil {
		return nil, err
	}
	synced := make([]Reward, 0, len(rewards))
	for _, reward := range rewards {
		if reward.ID == "" || reward.Title == "" {
			continue
		}
		names.Set(reward.ID, reward.Title)
		synced = append(synced, reward)
	}
	return synced, nil
}
