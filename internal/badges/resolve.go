package badges

import (
	"strconv"
	"strings"
)

// None is reported for a user whose badges haven't been seen yet. It's distinct from
// the empty string, which means the user is known to have no displayable badges.
const None = "_ "

// Threshold pairs the minimum rank at which a badge tier applies with its glyph
type Threshold struct {
	Min   int
	Glyph string
}

// Subscriber tiers, by number of months subscribed. Entries must stay sorted by Min.
var Subscriber = []Threshold{
	{0, "①"},
	{3, "③"},
	{6, "⑥"},
	{9, "⑨"},
	{12, "ⅰ"},
	{24, "ⅱ"},
	{36, "ⅲ"},
	{48, "ⅳ"},
	{60, "ⅴ"},
	{72, "ⅵ"},
	{84, "ⅶ"},
	{96, "ⅷ"},
	{108, "ⅸ"},
	{120, "ⅹ"},
	{132, "ⅺ"},
	{144, "ⅻ"},
}

// Bits tiers, by total bits cheered. Entries must stay sorted by Min.
var Bits = []Threshold{
	{0, "▴"},
	{100, "⬧"},
	{1_000, "⬠"},
	{5_000, "⬡"},
	{10_000, "🟋"},
	{100_000, "🟎"},
}

// constant maps badge classes that always render the same way, regardless of rank
var constant = map[string]string{
	"broadcaster":     "🜲",
	"staff":           "🜨",
	"admin":           "🜶",
	"moderator":       "🗡",
	"vip":             "⚑",
	"founder":         "ⲷ",
	"sub-gift-leader": "⁘",
	"sub-gifter":      ":",
	"bits-leader":     "❖",
	"partner":         "✓",
	"turbo":           "+",
	"premium":         "±",
}

// ranked maps badge classes whose glyph depends on rank to their threshold tables
var ranked = map[string][]Threshold{
	"subscriber": Subscriber,
	"bits":       Bits,
}

// Rank returns the glyph of the last entry in table whose Min is <= rank, or "" if
// rank is below every entry
func Rank(table []Threshold, rank int) string {
	glyph := ""
	for _, t := range table {
		if t.Min > rank {
			break
		}
		glyph = t.Glyph
	}
	return glyph
}

// Glyph resolves a single badge to its glyph, returning "" for badge classes we don't
// know how to display
func Glyph(class string, rank string) string {
	if glyph, ok := constant[class]; ok {
		return glyph
	}
	if table, ok := ranked[class]; ok {
		n, err := strconv.Atoi(rank)
		if err != nil {
			n = 0
		}
		return Rank(table, n)
	}
	return ""
}

// Resolve converts the raw value of a 'badges' tag (e.g. "moderator/1,subscriber/12")
// into a string of glyphs, in the order the badges were listed. A non-empty result
// carries a single trailing space so it can be prefixed directly onto a nickname.
func Resolve(raw string) string {
	var b strings.Builder
	for _, pair := range strings.Split(raw, ",") {
		class, rank, _ := strings.Cut(pair, "/")
		b.WriteString(Glyph(class, rank))
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte(' ')
	return b.String()
}
