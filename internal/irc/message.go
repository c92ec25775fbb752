package irc

import (
	"strconv"
	"strings"
)

// Tag is a single IRCv3 key=value pair from the tag section of a line
type Tag struct {
	Key   string
	Value string

	// bare is set when the tag was written without an '=', so that re-serializing the
	// message reproduces the original line exactly
	bare bool
}

// Message is a single IRC protocol line, broken down into its tags, prefix, command,
// middle parameters and trailing parameter
type Message struct {
	// Tags preserves the order in which tags appeared on the wire
	Tags []Tag

	// Prefix is the source of the message without its leading ':', e.g.
	// "nick!user@host" or "tmi.twitch.tv"; empty if the line had no prefix
	Prefix string

	Command string
	Args    []string

	// Trail is everything after the first standalone " :" separator
	Trail string

	// HasTrail records whether a trailing separator was present, so that an empty
	// trailing parameter survives a round-trip
	HasTrail bool
}

// Parse breaks a raw wire line down into a Message. It never fails: any part of the
// line that can't be found is left empty.
func Parse(raw string) *Message {
	m := &Message{}
	line := strings.TrimRight(raw, "\r\n")

	// @key=value;key2=value2 ...
	if strings.HasPrefix(line, "@") {
		section, rest := cutSpace(line[1:])
		m.Tags = parseTags(section)
		line = rest
	}

	// :nick!user@host ...
	if strings.HasPrefix(line, ":") {
		prefix, rest := cutSpace(line[1:])
		m.Prefix = prefix
		line = rest
	}

	// COMMAND arg1 arg2 :trailing text
	head := line
	if strings.HasPrefix(line, ":") {
		head = ""
		m.Trail = line[1:]
		m.HasTrail = true
	} else if i := strings.Index(line, " :"); i >= 0 {
		head = line[:i]
		m.Trail = line[i+2:]
		m.HasTrail = true
	}

	fields := strings.Fields(head)
	if len(fields) > 0 {
		m.Command = fields[0]
		m.Args = fields[1:]
	}
	return m
}

// cutSpace splits s at its first space, returning everything before the space and
// everything after it; if there's no space the whole string is returned as the head
func cutSpace(s string) (string, string) {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func parseTags(section string) []Tag {
	tags := make([]Tag, 0, strings.Count(section, ";")+1)
	for _, entry := range strings.Split(section, ";") {
		if entry == "" {
			continue
		}
		key, value, found := strings.Cut(entry, "=")
		tags = append(tags, Tag{Key: key, Value: value, bare: !found})
	}
	return tags
}

// String re-serializes the message as a wire-valid IRC line, without a line ending
func (m *Message) String() string {
	var b strings.Builder
	if len(m.Tags) > 0 {
		b.WriteByte('@')
		for i, tag := range m.Tags {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(tag.Key)
			if !tag.bare || tag.Value != "" {
				b.WriteByte('=')
				b.WriteString(tag.Value)
			}
		}
		b.WriteByte(' ')
	}
	if m.Prefix != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(m.Command)
	for _, arg := range m.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	if m.HasTrail || m.Trail != "" {
		if m.Command != "" || len(m.Args) > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(':')
		b.WriteString(m.Trail)
	}
	return b.String()
}

// Tag returns the raw value of the first tag with the given key, and whether any such
// tag exists
func (m *Message) Tag(key string) (string, bool) {
	for _, tag := range m.Tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// TagInt parses the value of the given tag as an integer, returning 0 if the tag is
// missing or isn't a number
func (m *Message) TagInt(key string) int {
	value, ok := m.Tag(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// TagText returns the value of the given tag with IRCv3 escape sequences decoded, for
// tags like system-msg that carry human-readable text
func (m *Message) TagText(key string) (string, bool) {
	value, ok := m.Tag(key)
	if !ok {
		return "", false
	}
	return UnescapeTagValue(value), true
}

// Author returns the nickname portion of the prefix: everything before the first '!'
// or '@', or the whole prefix if it contains neither
func (m *Message) Author() string {
	if i := strings.IndexAny(m.Prefix, "!@"); i >= 0 {
		return m.Prefix[:i]
	}
	return m.Prefix
}

// Target returns the first middle parameter, which for PRIVMSG and most Twitch
// commands is the channel (or user) the message is addressed to
func (m *Message) Target() string {
	if len(m.Args) == 0 {
		return ""
	}
	return m.Args[0]
}

// Clone returns a deep copy of the message, safe to rewrite without affecting the
// original
func (m *Message) Clone() *Message {
	c := *m
	if m.Tags != nil {
		c.Tags = append([]Tag(nil), m.Tags...)
	}
	if m.Args != nil {
		c.Args = append([]string(nil), m.Args...)
	}
	return &c
}

var tagValueUnescaper = strings.NewReplacer(
	`\:`, ";",
	`\s`, " ",
	`\\`, `\`,
	`\r`, "\r",
	`\n`, "\n",
)

// UnescapeTagValue decodes the escape sequences permitted in IRCv3 tag values
func UnescapeTagValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return tagValueUnescaper.Replace(value)
}
