// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arkadyv/bellhop/internal/config"
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/ports"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

// Server exposes the session engine over MCP using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	eng    *engine.Engine
	sun    ports.SunTimeProvider
	cfg    *config.Config
}

// NewServer creates a new MCP server instance.
func NewServer(eng *engine.Engine, sun ports.SunTimeProvider, cfg *config.Config) *Server {
	s := &Server{
		eng: eng,
		sun: sun,
		cfg: cfg,
	}

	s.server = server.NewMCPServer(
		"bellhop",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"list_sessions",
			mcp.WithDescription("List all scheduled sessions (timers, reminders, pomodoros) with their countdowns, plus the active alarm if one is ringing"),
		),
		s.handleListSessions,
	)

	createTimerTool := mcp.NewTool(
		"create_timer",
		mcp.WithDescription("Start a countdown timer"),
		mcp.WithNumber(
			"hours",
			mcp.Description("Hours component of the duration"),
		),
		mcp.WithNumber(
			"minutes",
			mcp.Description("Minutes component of the duration"),
		),
		mcp.WithNumber(
			"seconds",
			mcp.Description("Seconds component of the duration"),
		),
		mcp.WithString(
			"name",
			mcp.Description("Optional timer name"),
		),
		mcp.WithString(
			"description",
			mcp.Description("Optional note shown when the timer fires"),
		),
		mcp.WithString(
			"sound",
			mcp.Description("Alarm sound: light, strong, school, siren"),
			mcp.Enum("light", "strong", "school", "siren"),
		),
	)
	s.server.AddTool(createTimerTool, s.handleCreateTimer)

	createReminderTool := mcp.NewTool(
		"create_reminder",
		mcp.WithDescription("Schedule a reminder at an absolute date and time"),
		mcp.WithString(
			"at",
			mcp.Required(),
			mcp.Description("Target time in RFC 3339 format, e.g. 2026-08-29T15:04:05Z"),
		),
		mcp.WithString(
			"name",
			mcp.Description("Optional reminder name"),
		),
		mcp.WithString(
			"description",
			mcp.Description("Optional note shown when the reminder fires"),
		),
		mcp.WithString(
			"sound",
			mcp.Description("Alarm sound: light, strong, school, siren"),
			mcp.Enum("light", "strong", "school", "siren"),
		),
	)
	s.server.AddTool(createReminderTool, s.handleCreateReminder)

	startPomodoroTool := mcp.NewTool(
		"start_pomodoro",
		mcp.WithDescription("Start a pomodoro work/break cycle (defaults: 25m work, 5m break, 15m long break, 4 sessions per cycle, 1 cycle)"),
		mcp.WithString(
			"name",
			mcp.Description("Optional pomodoro name"),
		),
		mcp.WithNumber(
			"work_minutes",
			mcp.Description("Work phase length in minutes (default 25)"),
		),
		mcp.WithNumber(
			"break_minutes",
			mcp.Description("Break phase length in minutes (default 5)"),
		),
		mcp.WithNumber(
			"long_break_minutes",
			mcp.Description("Long break length in minutes (default 15)"),
		),
		mcp.WithNumber(
			"sessions_per_cycle",
			mcp.Description("Work sessions before a long break (default 4)"),
		),
		mcp.WithNumber(
			"total_cycles",
			mcp.Description("Number of full cycles (default 1)"),
		),
	)
	s.server.AddTool(startPomodoroTool, s.handleStartPomodoro)

	s.server.AddTool(
		mcp.NewTool(
			"dismiss_alarm",
			mcp.WithDescription("Dismiss the currently ringing alarm"),
		),
		s.handleDismissAlarm,
	)

	snoozeTool := mcp.NewTool(
		"snooze_alarm",
		mcp.WithDescription("Snooze the currently ringing alarm"),
		mcp.WithNumber(
			"minutes",
			mcp.Description("Snooze delay in minutes (default from config)"),
		),
	)
	s.server.AddTool(snoozeTool, s.handleSnoozeAlarm)

	repeatTool := mcp.NewTool(
		"repeat_session",
		mcp.WithDescription("Re-run a timer or pomodoro from its original duration"),
		mcp.WithNumber(
			"session_id",
			mcp.Required(),
			mcp.Description("The ID of the session to repeat"),
		),
	)
	s.server.AddTool(repeatTool, s.handleRepeatSession)

	removeTool := mcp.NewTool(
		"remove_session",
		mcp.WithDescription("Cancel and delete a scheduled session"),
		mcp.WithNumber(
			"session_id",
			mcp.Required(),
			mcp.Description("The ID of the session to remove"),
		),
	)
	s.server.AddTool(removeTool, s.handleRemoveSession)

	s.server.AddTool(
		mcp.NewTool(
			"get_history",
			mcp.WithDescription("Get completed reminders and pomodoros, newest first"),
		),
		s.handleGetHistory,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_sun_times",
			mcp.WithDescription("Get the next sunrise and sunset for the configured coordinates"),
		),
		s.handleGetSunTimes,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

func sessionData(sess *domain.Session, now time.Time) map[string]interface{} {
	data := map[string]interface{}{
		"id":           sess.ID,
		"type":         string(sess.Kind),
		"name":         sess.Name,
		"description":  sess.Description,
		"target_time":  sess.TargetTime.Format(time.RFC3339),
		"remaining":    timeformat.Countdown(sess.Remaining(now)),
		"sound":        string(sess.Sound.Type),
		"snooze_count": sess.SnoozeCount,
	}
	if p := sess.Pomodoro; p != nil {
		data["pomodoro"] = map[string]interface{}{
			"phase":              string(p.Phase),
			"current_session":    p.CurrentSession,
			"sessions_per_cycle": p.SessionsPerCycle,
			"current_cycle":      p.CurrentCycle,
			"total_cycles":       p.TotalCycles,
			"completed_sessions": p.CompletedSessions,
		}
	}
	return data
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func soundProfile(request mcp.CallToolRequest) domain.SoundProfile {
	profile := domain.DefaultSoundProfile()
	if raw := request.GetString("sound", ""); raw != "" {
		profile.Type = domain.SoundType(raw)
	}
	return profile
}

// handleListSessions handles the list_sessions tool.
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.eng.Now()

	sessions := []map[string]interface{}{}
	for _, sess := range s.eng.Sessions() {
		sessions = append(sessions, sessionData(sess, now))
	}

	result := map[string]interface{}{
		"sessions":       sessions,
		"active_alarm":   nil,
		"pending_alarms": s.eng.PendingAlarms(),
	}
	if active := s.eng.ActiveAlarm(); active != nil {
		result["active_alarm"] = sessionData(active, now)
	}

	return textResult(result)
}

// handleCreateTimer handles the create_timer tool.
func (s *Server) handleCreateTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.eng.Apply(engine.CreateTimer{
		Name:        request.GetString("name", ""),
		Description: request.GetString("description", ""),
		Sound:       soundProfile(request),
		Hours:       int(request.GetFloat("hours", 0)),
		Minutes:     int(request.GetFloat("minutes", 0)),
		Seconds:     int(request.GetFloat("seconds", 0)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create timer: %w", err)
	}
	return textResult(sessionData(sess, s.eng.Now()))
}

// handleCreateReminder handles the create_reminder tool.
func (s *Server) handleCreateReminder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawAt, err := request.RequireString("at")
	if err != nil {
		return nil, err
	}
	at, err := time.Parse(time.RFC3339, rawAt)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", rawAt, err)
	}

	sess, err := s.eng.Apply(engine.CreateReminder{
		Name:        request.GetString("name", ""),
		Description: request.GetString("description", ""),
		Sound:       soundProfile(request),
		At:          at,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return textResult(sessionData(sess, s.eng.Now()))
}

// handleStartPomodoro handles the start_pomodoro tool.
func (s *Server) handleStartPomodoro(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := domain.PomodoroConfig{
		WorkDuration:      time.Duration(request.GetFloat("work_minutes", 0)) * time.Minute,
		BreakDuration:     time.Duration(request.GetFloat("break_minutes", 0)) * time.Minute,
		LongBreakDuration: time.Duration(request.GetFloat("long_break_minutes", 0)) * time.Minute,
		SessionsPerCycle:  int(request.GetFloat("sessions_per_cycle", 0)),
		TotalCycles:       int(request.GetFloat("total_cycles", 0)),
	}

	sess, err := s.eng.Apply(engine.CreatePomodoro{
		Name:   request.GetString("name", ""),
		Sound:  soundProfile(request),
		Config: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start pomodoro: %w", err)
	}
	return textResult(sessionData(sess, s.eng.Now()))
}

// handleDismissAlarm handles the dismiss_alarm tool.
func (s *Server) handleDismissAlarm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.eng.Apply(engine.Dismiss{}); err != nil {
		return nil, fmt.Errorf("failed to dismiss: %w", err)
	}
	return textResult(map[string]interface{}{"dismissed": true})
}

// handleSnoozeAlarm handles the snooze_alarm tool.
func (s *Server) handleSnoozeAlarm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes := int(request.GetFloat("minutes", 0))
	if _, err := s.eng.Apply(engine.Snooze{Minutes: minutes}); err != nil {
		return nil, fmt.Errorf("failed to snooze: %w", err)
	}
	return textResult(map[string]interface{}{"snoozed": true})
}

// handleRepeatSession handles the repeat_session tool.
func (s *Server) handleRepeatSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireFloat("session_id")
	if err != nil {
		return nil, err
	}
	sess, err := s.eng.Apply(engine.Repeat{ID: int64(id)})
	if err != nil {
		return nil, fmt.Errorf("failed to repeat session: %w", err)
	}
	return textResult(sessionData(sess, s.eng.Now()))
}

// handleRemoveSession handles the remove_session tool.
func (s *Server) handleRemoveSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireFloat("session_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.eng.Apply(engine.Remove{ID: int64(id)}); err != nil {
		return nil, fmt.Errorf("failed to remove session: %w", err)
	}
	return textResult(map[string]interface{}{"removed": true})
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := []map[string]interface{}{}
	for _, e := range s.eng.History() {
		entry := map[string]interface{}{
			"name":         e.Name,
			"type":         string(e.Kind),
			"completed_at": e.CompletedAt.Format(time.RFC3339),
		}
		if e.Kind == domain.KindPomodoro {
			entry["completed_sessions"] = e.CompletedSessions
			entry["total_cycles"] = e.TotalCycles
		}
		entries = append(entries, entry)
	}
	return textResult(map[string]interface{}{"history": entries})
}

// handleGetSunTimes handles the get_sun_times tool.
func (s *Server) handleGetSunTimes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.eng.Now()
	lat := s.cfg.DailyTimes.Latitude
	lng := s.cfg.DailyTimes.Longitude

	result := map[string]interface{}{
		"latitude":  lat,
		"longitude": lng,
	}
	if rise, ok := s.sun.NextSunrise(now, lat, lng); ok {
		result["next_sunrise"] = rise.Format(time.RFC3339)
	}
	if set, ok := s.sun.NextSunset(now, lat, lng); ok {
		result["next_sunset"] = set.Format(time.RFC3339)
	}
	return textResult(result)
}
