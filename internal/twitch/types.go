package twitch

import "github.com/nicklaw5/helix/v2"

// UserReader represents the subset of Twitch Helix API operations required to look up
// users by login
type UserReader interface {
	GetUsers(params *helix.UsersParams) (*helix.UsersResponse, error)
}

// RewardReader represents the subset of Twitch Helix API operations required to list
// a channel's custom channel point rewards
type RewardReader interface {
	GetCustomRewards(params *helix.GetCustomRewardsParams) (*helix.ChannelCustomRewardResponse, error)
}

// RewardNames records the display name for each custom reward, keyed by reward ID
type RewardNames interface {
	Set(key string, value string)
}
