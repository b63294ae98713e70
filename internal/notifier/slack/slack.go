package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
	"github.com/clubkit/touchline/internal/metrics"
	"github.com/clubkit/touchline/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendGoalNotification announces one recorded goal and the running score.
func (s *Notifier) SendGoalNotification(group goals.GoalGroup, scoreA, scoreB int, dryRun bool) error {
	msg := s.formatGoalNotification(group, scoreA, scoreB)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendLineupNotification announces a saved lineup.
func (s *Notifier) SendLineupNotification(matchID string, template string, positions []formation.PlayerPosition, dryRun bool) error {
	msg := s.formatLineupNotification(matchID, template, positions)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendTimeline posts the full goal timeline of a match instance.
func (s *Notifier) SendTimeline(matchID string, groups []goals.GoalGroup, dryRun bool) error {
	msg := s.formatTimeline(matchID, groups)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
