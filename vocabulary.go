package tagchat

// HandledCommands declares every IRC command that the event handler classifies; any
// other command falls through to the host's default rendering untouched
var HandledCommands = []string{
	"PRIVMSG",
	"WHISPER",
	"USERNOTICE",
	"HOSTTARGET",
	"CLEARMSG",
	"CLEARCHAT",
	"ROOMSTATE",
	"USERSTATE",
}

// HandledTags declares the IRCv3 tag keys whose values drive classification and
// formatting
var HandledTags = []string{
	"custom-reward-id",
	"msg-id",
	"msg-param-viewerCount",
	"msg-param-displayName",
	"system-msg",
	"login",
	"msg-param-sub-plan",
	"msg-param-streak-months",
	"msg-param-cumulative-months",
	"msg-param-recipient-user-name",
	"msg-param-months",
	"msg-param-mass-gift-count",
	"msg-param-sender-login",
	"ban-duration",
	"ban-reason",
	"badges",
	"bits",
}

// IsHandledCommand reports whether the given command is one that the event handler
// will classify
func IsHandledCommand(command string) bool {
	for _, c := range HandledCommands {
		if c == command {
			return true
		}
	}
	return false
}
