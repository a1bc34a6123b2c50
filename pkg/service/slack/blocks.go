package slack

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Slack rejects section text longer than 3000 characters.
const maxSectionTextBytes = 2900

func submissionFallbackText(sub *model.Submission) string {
	return fmt.Sprintf("New interview request from %s <%s>", sub.Name, sub.Email)
}

func buildSubmissionBlocks(sub *model.Submission) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "New interview request", false, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Name:*\n"+sub.Name, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Email:*\n"+sub.Email, false, false),
	}
	if sub.Company != "" {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, "*Company:*\n"+sub.Company, false, false))
	}
	if sub.HasSchedule() {
		when := sub.PreferredDate + " " + sub.PreferredTime
		if sub.Timezone != "" {
			when += " (" + sub.Timezone + ")"
		}
		fields = append(fields,
			slack.NewTextBlockObject(slack.MarkdownType, "*Preferred time:*\n"+when, false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Duration:*\n%d minutes", sub.DurationMinutes), false, false),
		)
	}

	blocks := []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
	}

	if msg := strings.TrimSpace(sub.Message); msg != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, ">"+strings.ReplaceAll(truncateToMaxBytes(msg, maxSectionTextBytes), "\n", "\n>"), false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Submission #%d", sub.ID), false, false),
	))

	return blocks
}

// truncateToMaxBytes cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncateToMaxBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
