package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the registered squad members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members")
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available formation templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/templates")
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Load the tactics board for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/board/load" + matchQuery())
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the goal timeline for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/timeline" + matchQuery())
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current score for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/score" + matchQuery())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func matchQuery() string {
	q := url.Values{}
	q.Set("matchID", matchID)
	q.Set("matchNumber", fmt.Sprint(matchNumber))
	return "?" + q.Encode()
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
