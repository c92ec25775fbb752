package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golden-vcr/tagchat"
	"github.com/golden-vcr/tagchat/internal/badges"
	"github.com/golden-vcr/tagchat/internal/irc"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [raw-line...]",
		Short: "Break raw IRC lines down into tags, prefix, command and args",
		Long: "Break raw IRC lines down into tags, prefix, command and args. With no " +
			"arguments, lines are read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachLine(cmd.InOrStdin(), args, func(raw string) {
				writeMessage(cmd.OutOrStdout(), irc.Parse(raw))
			})
		},
	}
}

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges <badges-tag>...",
		Short: "Resolve the value of a badges tag to display glyphs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%q\n", raw, badges.Resolve(raw))
			}
			return nil
		},
	}
}

// eachLine calls fn for each argument, or for each non-blank line of in if there are
// no arguments
func eachLine(in io.Reader, args []string, fn func(raw string)) error {
	if len(args) > 0 {
		for _, arg := range args {
			fn(arg)
		}
		return nil
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			fn(line)
		}
	}
	return scanner.Err()
}

func writeMessage(w io.Writer, m *irc.Message) {
	handled := ""
	if !tagchat.IsHandledCommand(m.Command) {
		handled = " (ignored)"
	}
	fmt.Fprintf(w, "command:   %s%s\n", m.Command, handled)
	if m.Prefix != "" {
		fmt.Fprintf(w, "prefix:    %s\n", m.Prefix)
	}
	if author := m.Author(); author != "" {
		fmt.Fprintf(w, "author:    %s\n", author)
	}
	if target := m.Target(); target != "" {
		fmt.Fprintf(w, "target:    %s\n", target)
	}
	for i, arg := range m.Args {
		fmt.Fprintf(w, "arg[%d]:    %s\n", i, arg)
	}
	if m.HasTrail {
		text, action := irc.UnwrapAction(m.Trail)
		if action {
			fmt.Fprintf(w, "action:    %s\n", text)
		} else {
			fmt.Fprintf(w, "trail:     %s\n", text)
		}
	}
	for _, tag := range m.Tags {
		fmt.Fprintf(w, "tag:       %s = %q\n", tag.Key, irc.UnescapeTagValue(tag.Value))
	}
	if m.Command == "PRIVMSG" || m.Command == "WHISPER" {
		fmt.Fprintf(w, "signature: %s\n", m.Signature())
	}
	fmt.Fprintln(w)
}
