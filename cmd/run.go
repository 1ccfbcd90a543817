package cmd

import (
	"context"
	"fmt"
	"time"

	"cricscore/config"
	"cricscore/database"
	"cricscore/events"
	"cricscore/repository"
	"cricscore/service"
	log "github.com/sirupsen/logrus"
)

// Services bundles the scoring core for whatever transport layer embeds it
type Services struct {
	Scoring     service.ScoringService
	Lifecycle   service.LifecycleService
	Partnership service.PartnershipService
	Scoreboard  service.ScoreboardService
}

// NewServices wires the scoring core on top of a database connection
func NewServices(db *database.DB, eventBus *events.Bus) *Services {
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	return &Services{
		Scoring:     service.NewScoringService(uowFactory),
		Lifecycle:   service.NewLifecycleService(uowFactory),
		Partnership: service.NewPartnershipService(uowFactory),
		Scoreboard:  service.NewScoreboardService(uowFactory),
	}
}

// Run initializes the scoring backend and blocks until the context is
// cancelled. Transport layers register through mounts; each mount receives
// the wired services before Run starts waiting.
func Run(ctx context.Context, mounts ...func(*Services) error) error {
	cfg := config.Get()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.Info("Starting cricscore...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	eventBus := events.NewBus()
	subscribeEventLogging(eventBus)

	services := NewServices(db, eventBus)
	log.Info("Services initialized")

	for _, mount := range mounts {
		if err := mount(services); err != nil {
			db.Close()
			return fmt.Errorf("failed to mount transport: %w", err)
		}
	}

	log.Infof("cricscore is running in %s mode", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// subscribeEventLogging attaches structured log handlers to the scoring
// events, the default consumer when no overlay is connected
func subscribeEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBallRecorded, func(ctx context.Context, event events.Event) {
		e := event.(events.BallRecordedEvent)
		log.WithFields(log.Fields{
			"inningsID": e.Innings.ID,
			"over":      e.Ball.OverNumber,
			"ball":      e.Ball.BallNumber,
			"runs":      e.Ball.RunsScored,
			"total":     e.Innings.TotalRuns,
			"wickets":   e.Innings.TotalWickets,
			"overs":     e.Innings.TotalOvers,
		}).Info("Ball recorded")
	})

	bus.Subscribe(events.EventTypeWicketFallen, func(ctx context.Context, event events.Event) {
		e := event.(events.WicketFallenEvent)
		log.WithFields(log.Fields{
			"inningsID":  e.InningsID,
			"playerOut":  e.PlayerOutID,
			"wicketType": e.WicketType,
			"wickets":    e.TotalWickets,
		}).Info("Wicket fallen")
	})

	bus.Subscribe(events.EventTypeMilestoneAchieved, func(ctx context.Context, event events.Event) {
		e := event.(events.MilestoneAchievedEvent)
		log.WithFields(log.Fields{
			"playerID": e.PlayerID,
			"type":     e.MilestoneType,
			"value":    e.MilestoneValue,
			"matchID":  e.MatchID,
		}).Info("Milestone achieved")
	})

	bus.Subscribe(events.EventTypeInningsCompleted, func(ctx context.Context, event events.Event) {
		e := event.(events.InningsCompletedEvent)
		log.WithFields(log.Fields{
			"inningsID": e.InningsID,
			"matchID":   e.MatchID,
			"runs":      e.TotalRuns,
			"wickets":   e.TotalWickets,
			"overs":     e.TotalOvers,
		}).Info("Innings completed")
	})

	bus.Subscribe(events.EventTypeMatchStatusChange, func(ctx context.Context, event events.Event) {
		e := event.(events.MatchStatusChangeEvent)
		log.WithFields(log.Fields{
			"matchID": e.MatchID,
			"from":    e.OldStatus,
			"to":      e.NewStatus,
		}).Info("Match status changed")
	})
}
