package slack

import (
	"fmt"
	"strings"

	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
	"github.com/slack-go/slack"
)

// formatGoalNotification creates the Slack message for a recorded goal using Block Kit.
func (s *Notifier) formatGoalNotification(group goals.GoalGroup, scoreA, scoreB int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ Goal! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s (team %s) at %s", group.ScorerName, group.Team, group.Timestamp)
	if group.AssistantName != "" {
		detailsText += fmt.Sprintf("\nAssist: %s", group.AssistantName)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	scoreText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Score: %d - %d", scoreA, scoreB), true, false)
	blocks = append(blocks, slack.NewContextBlock("", scoreText))

	return slack.NewBlockMessage(blocks...)
}

// formatLineupNotification creates the Slack message for a saved lineup.
func (s *Notifier) formatLineupNotification(matchID string, template string, positions []formation.PlayerPosition) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📋 Lineup saved 📋", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Match: %s\nFormation: %s", matchID, template)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var playerNames []string
	for _, pos := range positions {
		if pos.PlayerName != "" {
			playerNames = append(playerNames, fmt.Sprintf("• %s", pos.PlayerName))
		}
	}
	if len(playerNames) > 0 {
		playersText := "Players:\n" + strings.Join(playerNames, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTimeline creates the Slack message for a full goal timeline.
func (s *Notifier) formatTimeline(matchID string, groups []goals.GoalGroup) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🗒️ Goal timeline 🗒️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(groups) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No goals recorded yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, group := range groups {
		line := fmt.Sprintf("• %s: %s (team %s)", group.Timestamp, group.ScorerName, group.Team)
		if group.AssistantName != "" {
			line += fmt.Sprintf(", assist %s", group.AssistantName)
		}
		lines = append(lines, line)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Match %s, %d goals", matchID, len(groups)), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}
