package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/board"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			log.Error("Failed to list members", "error", err)
			http.Error(w, "Failed to list members", http.StatusInternalServerError)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) ListTemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			writeJSON(w, s.Catalog.Names())
			return
		}
		side := formation.SideA
		if r.URL.Query().Get("side") == string(formation.SideB) {
			side = formation.SideB
		}
		writeJSON(w, s.Catalog.Slots(name, side))
	}
}

// boardState is the full response for a loaded board.
type boardState struct {
	Key       board.Key                  `json:"key"`
	Positions []formation.PlayerPosition `json:"positions"`
	TemplateA string                     `json:"template_a"`
	TemplateB string                     `json:"template_b"`
	StrategyA string                     `json:"strategy_a"`
	StrategyB string                     `json:"strategy_b"`
	Opponent  string                     `json:"opponent,omitempty"`
	Timeline  []goals.GoalGroup          `json:"timeline"`
	ScoreA    int                        `json:"score_a"`
	ScoreB    int                        `json:"score_b"`
}

func (s *Server) LoadBoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, s.stateOf(session))
	}
}

func (s *Server) PlacePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		x, y, ok := pointFromRequest(w, r)
		if !ok {
			return
		}
		allowFree := r.URL.Query().Get("allow_free") == "true"

		pos, err := session.Place(playerID, s.playerName(playerID), x, y, allowFree)
		if err != nil {
			writePlacementError(w, err)
			return
		}
		writeJSON(w, pos)
	}
}

func (s *Server) MovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		x, y, ok := pointFromRequest(w, r)
		if !ok {
			return
		}
		allowFree := r.URL.Query().Get("allow_free") == "true"

		pos, err := session.Move(playerID, x, y, allowFree)
		if err != nil {
			writePlacementError(w, err)
			return
		}
		writeJSON(w, pos)
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		if err := session.Remove(playerID); err != nil {
			writePlacementError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Player %s returned to the bench", playerID)
	}
}

func (s *Server) SetTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		team, ok := teamFromRequest(w, r)
		if !ok {
			return
		}
		session.SetTemplate(team, r.URL.Query().Get("template"))
		writeJSON(w, s.stateOf(session))
	}
}

func (s *Server) ReapplyTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		team, ok := teamFromRequest(w, r)
		if !ok {
			return
		}
		session.ReapplyTemplate(team)
		writeJSON(w, s.stateOf(session))
	}
}

func (s *Server) SetStrategyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		team, ok := teamFromRequest(w, r)
		if !ok {
			return
		}
		session.SetStrategy(team, r.URL.Query().Get("text"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Strategy updated")
	}
}

func (s *Server) SetOpponentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		session.SetOpponent(r.URL.Query().Get("name"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Opponent updated")
	}
}

func (s *Server) SaveBoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		report, err := session.Save()
		if err != nil {
			log.Error("Failed to save board", "error", err)
			http.Error(w, "Failed to save board", http.StatusInternalServerError)
			return
		}

		if err := s.Notifier.SendLineupNotification(
			session.Key().MatchID,
			session.TemplateFor(formation.SideA),
			session.Positions(),
			isDryRunFromContext(r),
		); err != nil {
			log.Error("Failed to send lineup notification", "error", err)
		}

		writeJSON(w, report)
	}
}

func (s *Server) AddGoalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		scorerID := r.URL.Query().Get("scorerID")
		if scorerID == "" {
			http.Error(w, "scorerID is required", http.StatusBadRequest)
			return
		}
		team, ok := teamFromRequest(w, r)
		if !ok {
			return
		}
		assistantID := r.URL.Query().Get("assistantID")

		group := session.AddGoal(
			scorerID, s.playerName(scorerID),
			assistantID, s.playerName(assistantID),
			team, r.URL.Query().Get("timestamp"),
		)

		if err := s.Notifier.SendGoalNotification(group, session.Score(formation.SideA), session.Score(formation.SideB), isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send goal notification", "error", err)
		}

		writeJSON(w, group)
	}
}

func (s *Server) EditGoalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		groupID := r.URL.Query().Get("groupID")
		scorerID := r.URL.Query().Get("scorerID")
		if groupID == "" || scorerID == "" {
			http.Error(w, "groupID and scorerID are required", http.StatusBadRequest)
			return
		}
		team, ok := teamFromRequest(w, r)
		if !ok {
			return
		}
		assistantID := r.URL.Query().Get("assistantID")

		group, err := session.EditGoal(groupID, scorerID, s.playerName(scorerID), assistantID, s.playerName(assistantID), team)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, group)
	}
}

func (s *Server) RemoveGoalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		groupID := r.URL.Query().Get("groupID")
		if groupID == "" {
			http.Error(w, "groupID is required", http.StatusBadRequest)
			return
		}
		if err := session.RemoveGoal(groupID); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Goal removed")
	}
}

func (s *Server) TimelineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		timeline := session.Timeline()

		if r.URL.Query().Get("notify") == "true" {
			if err := s.Notifier.SendTimeline(session.Key().MatchID, timeline, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send timeline", "error", err)
			}
		}
		writeJSON(w, timeline)
	}
}

func (s *Server) ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.openSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, map[string]int{
			"team_a": session.Score(formation.SideA),
			"team_b": session.Score(formation.SideB),
		})
	}
}

// openSession resolves the match instance from the request and opens its
// board session, writing the error response itself on failure.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request) (*board.Session, bool) {
	matchID := r.URL.Query().Get("matchID")
	if matchID == "" {
		http.Error(w, "matchID is required", http.StatusBadRequest)
		return nil, false
	}
	matchNumber := 1
	if raw := r.URL.Query().Get("matchNumber"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "matchNumber must be a positive integer", http.StatusBadRequest)
			return nil, false
		}
		matchNumber = parsed
	}

	session, err := s.Boards.Open(matchID, matchNumber)
	if err != nil {
		if errors.Is(err, board.ErrSuperseded) {
			http.Error(w, "Load superseded by navigation", http.StatusConflict)
			return nil, false
		}
		log.Error("Failed to open board session", "error", err, "matchID", matchID)
		http.Error(w, "Failed to load board", http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

func (s *Server) stateOf(session *board.Session) boardState {
	return boardState{
		Key:       session.Key(),
		Positions: session.Positions(),
		TemplateA: session.TemplateFor(formation.SideA),
		TemplateB: session.TemplateFor(formation.SideB),
		StrategyA: session.StrategyFor(formation.SideA),
		StrategyB: session.StrategyFor(formation.SideB),
		Opponent:  session.Opponent(),
		Timeline:  session.Timeline(),
		ScoreA:    session.Score(formation.SideA),
		ScoreB:    session.Score(formation.SideB),
	}
}

// playerName looks a player's display name up in the roster, falling back to
// an empty string for unknown ids.
func (s *Server) playerName(playerID string) string {
	if playerID == "" {
		return ""
	}
	players, err := s.Store.GetPlayers([]string{playerID})
	if err != nil || len(players) == 0 {
		return ""
	}
	return players[0].Name
}

func pointFromRequest(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return 0, 0, false
	}
	return x, y, true
}

func teamFromRequest(w http.ResponseWriter, r *http.Request) (formation.Side, bool) {
	switch r.URL.Query().Get("team") {
	case string(formation.SideA):
		return formation.SideA, true
	case string(formation.SideB):
		return formation.SideB, true
	default:
		http.Error(w, "team must be A or B", http.StatusBadRequest)
		return "", false
	}
}

// writePlacementError maps the formation package's sentinel errors onto HTTP
// statuses. Expected rejections are conflicts, not server errors.
func writePlacementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, formation.ErrCapacityExceeded),
		errors.Is(err, formation.ErrNoMatchingSlot):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, formation.ErrExternalOpponent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, formation.ErrNotOnField):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
