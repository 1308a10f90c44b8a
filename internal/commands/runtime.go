package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/durok/internal/config"
	"github.com/balkashynov/durok/internal/db"
	"github.com/balkashynov/durok/internal/guide"
	"github.com/balkashynov/durok/internal/logging"
	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/session"
	"github.com/balkashynov/durok/internal/tracker"
)

// runtime holds everything an interactive or countdown command needs
type runtime struct {
	cfg        *config.Config
	log        *slog.Logger
	logCloser  io.Closer
	clock      *tracker.LoopClock
	session    *session.Session
	answerer   guide.Answerer
	askTimeout time.Duration
}

// loadConfig reads the config file and applies the persistent flags on top
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		loader = config.NewLoaderWithDir(dir)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		cfg.Input.Mode = mode
	}
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		in := argInput(parser.ForMode(cfg.Input.Mode), target)
		cfg.Target = config.TargetConfig{Text: in.Text, Hours: in.Hours, Minutes: in.Minutes}
	}
	return cfg, nil
}

// setup loads config, opens the entry log and creates the session
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	if err := db.Initialize(); err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to open entry log: %w", err)
	}

	clock := tracker.NewLoopClock()
	s, err := session.New(db.NewEntryStore(db.DB), session.Options{
		Strategy:          parser.ForMode(cfg.Input.Mode),
		Target:            cfg.TargetInput(),
		WeeklyTargetHours: cfg.Weekly.TargetHours,
		Clock:             clock,
		Logger:            logger,
	})
	if err != nil {
		db.Close()
		closer.Close()
		return nil, err
	}

	return &runtime{
		cfg:        cfg,
		log:        logger,
		logCloser:  closer,
		clock:      clock,
		session:    s,
		answerer:   newAnswerer(cfg),
		askTimeout: askTimeout(cfg),
	}, nil
}

// Close releases the entry log and the log file
func (r *runtime) Close() {
	if err := db.Close(); err != nil {
		r.log.Warn("failed to close entry log", "error", err)
	}
	r.logCloser.Close()
}

// seed writes the given duration args into the session's entries
func (r *runtime) seed(args []string) error {
	if len(args) == 0 {
		return nil
	}

	entries, err := r.session.Entries()
	if err != nil {
		return err
	}
	strategy := r.session.Strategy()

	for i, arg := range args {
		id := entries[0].ID
		if i > 0 {
			entry, err := r.session.AddEntry()
			if err != nil {
				return err
			}
			id = entry.ID
		}

		in := argInput(strategy, arg)
		if strategy.Name() == parser.ModeFields {
			err = r.session.EditEntryFields(id, in.Hours, in.Minutes)
		} else {
			err = r.session.EditEntryText(id, in.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func newAnswerer(cfg *config.Config) guide.Answerer {
	if cfg.Guide.Endpoint == "" {
		return nil
	}
	return guide.NewHTTPAnswerer(cfg.Guide.Endpoint, askTimeout(cfg))
}

func askTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Guide.TimeoutSeconds) * time.Second
}

// argInput reads a command line duration. Fields mode takes "HOURS,MINUTES"
// (either part may be empty); text mode takes the argument as typed.
func argInput(strategy parser.Strategy, arg string) parser.Input {
	if strategy.Name() != parser.ModeFields {
		return parser.Input{Text: arg}
	}

	hours, minutes, _ := strings.Cut(arg, ",")
	return parser.Input{
		Hours:   parser.SanitizeDigits(hours),
		Minutes: parser.SanitizeDigits(minutes),
	}
}
