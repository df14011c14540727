// ABOUTME: Wins application service joining the store and the tag classifier
// ABOUTME: Owns the add/update write path and the derived graph and chain views
package wins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/log"

	"github.com/harper/quietwins/internal/chains"
	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/graph"
	"github.com/harper/quietwins/internal/logging"
	"github.com/harper/quietwins/internal/tagging"
)

const (
	// DateLayout is the calendar date format stored on every win.
	DateLayout = "2006-01-02"

	// Version is reported by the MCP server and the HTTP API.
	Version = "0.1.0"
)

var (
	ErrEmptyText   = errors.New("win text is empty")
	ErrInvalidDate = errors.New("invalid win date")
)

// Service is the entry point for every surface (CLI, MCP, HTTP).
type Service struct {
	db         *sql.DB
	classifier *tagging.Classifier
	autoTag    bool
	journalDir string
	journalFmt string
	logger     *log.Logger
	now        func() time.Time
}

type Option func(*Service)

// WithAutoTag toggles classifier inference on add. When off only user
// tags are stored.
func WithAutoTag(on bool) Option {
	return func(s *Service) {
		s.autoTag = on
	}
}

// WithJournal appends every added win to a daily journal file in dir.
func WithJournal(dir, format string) Option {
	return func(s *Service) {
		s.journalDir = dir
		s.journalFmt = format
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(database *sql.DB, classifier *tagging.Classifier, opts ...Option) *Service {
	if classifier == nil {
		classifier = tagging.NewClassifier()
	}
	s := &Service{
		db:         database,
		classifier: classifier,
		autoTag:    true,
		logger:     logging.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying handle for callers that need raw access.
func (s *Service) DB() *sql.DB {
	return s.db
}

// AddParams describes a new win. Date may be empty (today) or any format
// dateparse understands.
type AddParams struct {
	Date string
	Text string
	Tags []string
}

// Add classifies and stores a win, returning it as persisted.
func (s *Service) Add(ctx context.Context, p AddParams) (*db.Entry, error) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	now := s.now()
	date, err := NormalizeDate(p.Date, now)
	if err != nil {
		return nil, err
	}

	userTags := tagging.ParseUserTags(p.Tags...)
	var tags string
	if s.autoTag {
		tags = tagging.MergeTags(userTags, s.classifier.Classify(ctx, text))
	} else {
		tags = tagging.FormatTags(userTags...)
	}

	entry := db.Entry{
		Date:      date,
		Text:      text,
		Tags:      tags,
		CreatedAt: now.Unix(),
	}
	id, err := db.InsertEntry(s.db, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add win: %w", err)
	}
	entry.ID = id
	s.logger.Debug("win added", "id", id, "tags", tags)

	if s.journalDir != "" {
		if err := logging.WriteJournal(s.journalDir, s.journalFmt, entry); err != nil {
			s.logger.Warn("failed to write journal", "dir", s.journalDir, "err", err)
		}
	}

	return &entry, nil
}

// UpdateParams overwrites fields of an existing win. Empty Date and Text
// keep the stored values; a nil Tags keeps the stored tags.
type UpdateParams struct {
	Date string
	Text string
	Tags []string
}

// Update rewrites a win in place. Tags are re-normalized, not re-inferred.
func (s *Service) Update(ctx context.Context, id int64, p UpdateParams) (*db.Entry, error) {
	entry, err := db.GetEntry(s.db, id)
	if err != nil {
		return nil, err
	}

	if p.Date != "" {
		date, err := NormalizeDate(p.Date, s.now())
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	if p.Text != "" {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			return nil, ErrEmptyText
		}
		entry.Text = text
	}
	if p.Tags != nil {
		entry.Tags = tagging.FormatTags(tagging.ParseUserTags(p.Tags...)...)
	}

	if err := db.UpdateEntry(s.db, *entry); err != nil {
		return nil, fmt.Errorf("failed to update win %d: %w", id, err)
	}
	s.logger.Debug("win updated", "id", id)
	return entry, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*db.Entry, error) {
	return db.GetEntry(s.db, id)
}

// Delete soft-deletes a win so it can be restored until purged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := db.SoftDelete(s.db, id); err != nil {
		return fmt.Errorf("failed to delete win %d: %w", id, err)
	}
	s.logger.Debug("win deleted", "id", id)
	return nil
}

func (s *Service) Restore(ctx context.Context, id int64) error {
	if err := db.Restore(s.db, id); err != nil {
		return fmt.Errorf("failed to restore win %d: %w", id, err)
	}
	s.logger.Debug("win restored", "id", id)
	return nil
}

// Purge permanently removes wins deleted more than hours ago.
func (s *Service) Purge(ctx context.Context, hours int) (int64, error) {
	n, err := db.PurgeDeletedOlderThan(s.db, hours)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted wins: %w", err)
	}
	if n > 0 {
		s.logger.Info("purged deleted wins", "count", n, "older_than_hours", hours)
	}
	return n, nil
}

// Active lists active wins newest first. limit <= 0 returns all.
func (s *Service) Active(ctx context.Context, limit int) ([]db.Entry, error) {
	entries, err := db.ListActive(s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list wins: %w", err)
	}
	return entries, nil
}

func (s *Service) Deleted(ctx context.Context) ([]db.DeletedEntry, error) {
	entries, err := db.ListDeleted(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted wins: %w", err)
	}
	return entries, nil
}

// Today returns active wins dated today.
func (s *Service) Today(ctx context.Context) ([]db.Entry, error) {
	entries, err := s.Active(ctx, 0)
	if err != nil {
		return nil, err
	}
	today := s.now().Format(DateLayout)
	out := []db.Entry{}
	for _, e := range entries {
		if e.Date == today {
			out = append(out, e)
		}
	}
	return out, nil
}

// Classify returns the sorted tags the classifier infers for text.
func (s *Service) Classify(ctx context.Context, text string) []string {
	return s.classifier.Classify(ctx, text).Sorted()
}

// Graph builds the tag co-occurrence graph over a snapshot of active wins.
func (s *Service) Graph(ctx context.Context) (graph.TagGraph, error) {
	entries, err := s.Active(ctx, 0)
	if err != nil {
		return graph.TagGraph{}, err
	}
	return graph.Build(entries), nil
}

// Chained groups a snapshot of active wins into chains.
func (s *Service) Chained(ctx context.Context) ([]chains.ChainedEntry, error) {
	entries, err := s.Active(ctx, 0)
	if err != nil {
		return nil, err
	}
	return chains.Group(entries), nil
}

// KnownTags lists every tag in use on active wins.
func (s *Service) KnownTags(ctx context.Context) ([]string, error) {
	entries, err := s.Active(ctx, 0)
	if err != nil {
		return nil, err
	}
	known := tagging.NewTagSet()
	for _, e := range entries {
		known.Union(tagging.ParseTagSet(e.Tags))
	}
	return known.Sorted(), nil
}

// TagHints maps each user tag that is not in use yet to the closest known
// tag within two edits. Call it before Add, while the tag is still new.
func (s *Service) TagHints(ctx context.Context, tags []string) (map[string]string, error) {
	known, err := s.KnownTags(ctx)
	if err != nil {
		return nil, err
	}
	hints := make(map[string]string)
	for _, t := range tagging.ParseUserTags(tags...) {
		if suggestion := tagging.DidYouMean(t, known); suggestion != "" {
			hints[t] = suggestion
		}
	}
	return hints, nil
}

// NormalizeDate turns user input into a DateLayout string. Empty input
// and "today" mean now; "yesterday" is one day earlier.
func NormalizeDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "today":
		return now.Format(DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(DateLayout), nil
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDate, raw, err)
	}
	return t.Format(DateLayout), nil
}
