// ABOUTME: Shared wiring from config to a ready wins service
// ABOUTME: Opens the database, loads rules and configures enrichment
package cli

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/tagging"
	"github.com/harper/quietwins/internal/wins"
)

var (
	successColor = color.New(color.FgGreen)
	hintColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	chainColor   = color.New(color.FgCyan)
)

// newClassifier builds the classifier described by the loaded config.
func newClassifier() (*tagging.Classifier, error) {
	rules, err := tagging.LoadRulesOrDefault(appConfig.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	opts := []tagging.Option{
		tagging.WithRules(rules),
		tagging.WithLogger(logger),
	}
	if appConfig.Enrichment.Enabled {
		opts = append(opts,
			tagging.WithEnricher(tagging.NewHTTPEnricher(appConfig.Enrichment.URL, &http.Client{Timeout: appConfig.Enrichment.Timeout.Duration})),
			tagging.WithTimeout(appConfig.Enrichment.Timeout.Duration),
		)
	}
	return tagging.NewClassifier(opts...), nil
}

// openService opens the database and returns a service plus a close func.
func openService() (*wins.Service, func(), error) {
	database, err := db.InitDB(appConfig.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	closeFn := func() {
		if closeErr := database.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", closeErr)
		}
	}

	if appConfig.SeedWelcome {
		seeded, err := db.SeedWelcome(database)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
		if seeded {
			logger.Info("seeded welcome win", "db", appConfig.DatabasePath)
		}
	}

	classifier, err := newClassifier()
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	svc := wins.NewService(database, classifier,
		wins.WithAutoTag(appConfig.AutoTag),
		wins.WithJournal(appConfig.Journal.Dir, appConfig.Journal.Format),
		wins.WithLogger(logger),
	)
	return svc, closeFn, nil
}

func parseWinID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid win id %q", arg)
	}
	return id, nil
}
