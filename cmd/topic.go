package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cryptoval/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string           { return "topic" }
func (*topicCmd) Synopsis() string       { return "display documentation about a given topic" }
func (*topicCmd) SetFlags(*flag.FlagSet) {}
func (*topicCmd) Usage() string {
	return `cval topic <name>|*

  Displays the documentation about a given topic, '*' for all of them.

`
}

func (c *topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		topics, err := docs.AllTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Available topics: %s\n", strings.Join(topics, ", "))
		return subcommands.ExitUsageError
	}

	content, err := docs.GetTopic(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
