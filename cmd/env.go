package cmd

import (
	"errors"
	"time"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/cache"
	"github.com/funfan0517/MediaPublishPlatform/internal/calendar"
	"github.com/funfan0517/MediaPublishPlatform/internal/config"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// apiNewFunc is the function used to create API clients. It can be replaced
// in tests to inject a mock server endpoint.
var apiNewFunc = api.New

// clock supplies "now" to every date command. Tests swap in a
// calendar.FixedClock.
var clock calendar.Clock = calendar.RealClock{}

// requireConfig loads and validates the config.
func requireConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, exitcode.General("loading config", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger for a command. --verbose forces debug.
func newLogger(cfg *config.Config, cmd *cobra.Command) *zap.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// location resolves --tz, then the configured timezone, then time.Local.
func location(cfg *config.Config) (*time.Location, error) {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, exitcode.BadInput("invalid --tz", err)
		}
		return loc, nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, exitcode.BadInput("invalid timezone", err)
	}
	return loc, nil
}

// newTools returns calendar tools on the package clock. A non-empty from
// pins "now" to that date instead.
func newTools(cfg *config.Config, from string) (*calendar.Tools, error) {
	loc, err := location(cfg)
	if err != nil {
		return nil, err
	}
	if from == "" {
		return calendar.New(clock, loc), nil
	}
	ref, err := parseDate(from, loc)
	if err != nil {
		return nil, err
	}
	return calendar.New(calendar.FixedClock(ref), loc), nil
}

// parseDate reads a date argument, mapping parse failures to usage errors.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := calendar.ParseInstant(s, loc)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidDate) {
			return time.Time{}, exitcode.BadInput("parsing date", err)
		}
		return time.Time{}, exitcode.General("parsing date", err)
	}
	return t, nil
}

// dateOrNow parses the optional first argument, falling back to tools.Now().
func dateOrNow(tools *calendar.Tools, args []string, loc *time.Location) (time.Time, error) {
	if len(args) == 0 {
		return tools.Now(), nil
	}
	return parseDate(args[0], loc)
}

// templateOr returns flagValue, or the configured template when it is empty.
func templateOr(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Template
}

// newClient creates an API client from config, wiring up debug logging.
func newClient(cfg *config.Config, cmd *cobra.Command) *api.Client {
	opts := []api.Option{
		api.WithEndpoint(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(newLogger(cfg, cmd).Named("api")),
	}
	if cfg.API.Token != "" {
		opts = append(opts, api.WithToken(cfg.API.Token))
	}
	return apiNewFunc(opts...)
}

// openStore opens the local or session store configured for cfg.
func openStore(cfg *config.Config, cmd *cobra.Command, session bool) (*cache.Store, error) {
	scope := cache.Local
	if session {
		scope = cache.Session
	}
	store, err := cache.Open(scope, cfg.Storage, newLogger(cfg, cmd).Named("cache"))
	if err != nil {
		return nil, exitcode.General("opening storage", err)
	}
	return store, nil
}
