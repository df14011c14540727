// ABOUTME: HTTP handlers for the quietwins API
// ABOUTME: Maps service errors to status codes and stored wins to JSON views
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harper/quietwins/internal/chains"
	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/tagging"
	"github.com/harper/quietwins/internal/wins"
)

// WinView is a win with its tags split into a list.
type WinView struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"`
	ChainID   *int     `json:"chain_id,omitempty"`
	DeletedAt int64    `json:"deleted_at,omitempty"`
}

func newWinView(e db.Entry) WinView {
	return WinView{
		ID:        e.ID,
		Date:      e.Date,
		Text:      e.Text,
		Tags:      tagging.ParseTagSet(e.Tags).Sorted(),
		CreatedAt: e.CreatedAt,
	}
}

// CreateWinInput DTO for logging a new win
type CreateWinInput struct {
	Text string   `json:"text" binding:"required"`
	Date string   `json:"date"`
	Tags []string `json:"tags"`
}

// UpdateWinInput DTO for editing a win. Omitted fields are kept.
type UpdateWinInput struct {
	Text *string   `json:"text"`
	Date *string   `json:"date"`
	Tags *[]string `json:"tags"`
}

// ClassifyInput DTO for a classification request
type ClassifyInput struct {
	Text string `json:"text" binding:"required"`
}

// PurgeInput DTO for purging the trash
type PurgeInput struct {
	OlderThanHours *int `json:"older_than_hours"`
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wins.ErrEmptyText), errors.Is(err, wins.ErrInvalidDate):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid win id"})
		return 0, false
	}
	return id, true
}

// Health reports that the API is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": wins.Version})
}

// ListWins lists active wins, newest first. ?limit=N caps the result and
// ?chains=true annotates and orders them by chain.
func (h *Handler) ListWins(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	views := []WinView{}
	if c.Query("chains") == "true" {
		grouped, err := h.svc.Chained(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		for _, g := range grouped {
			v := newWinView(g.Entry)
			v.ChainID = g.ChainID
			views = append(views, v)
		}
		if limit > 0 && len(views) > limit {
			views = views[:limit]
		}
	} else {
		entries, err := h.svc.Active(c.Request.Context(), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		for _, e := range entries {
			views = append(views, newWinView(e))
		}
	}

	c.JSON(http.StatusOK, gin.H{"wins": views, "count": len(views)})
}

// CreateWin logs a new win.
func (h *Handler) CreateWin(c *gin.Context) {
	var input CreateWinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	hints, err := h.svc.TagHints(ctx, input.Tags)
	if err != nil {
		writeError(c, err)
		return
	}

	entry, err := h.svc.Add(ctx, wins.AddParams{Date: input.Date, Text: input.Text, Tags: input.Tags})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"win": newWinView(*entry), "hints": hints})
}

// GetWin returns one active win.
func (h *Handler) GetWin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWinView(*entry))
}

// UpdateWin edits an existing win.
func (h *Handler) UpdateWin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateWinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var params wins.UpdateParams
	if input.Text != nil {
		if *input.Text == "" {
			writeError(c, wins.ErrEmptyText)
			return
		}
		params.Text = *input.Text
	}
	if input.Date != nil {
		params.Date = *input.Date
	}
	if input.Tags != nil {
		params.Tags = *input.Tags
		if params.Tags == nil {
			params.Tags = []string{}
		}
	}

	entry, err := h.svc.Update(c.Request.Context(), id, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWinView(*entry))
}

// DeleteWin moves a win to the trash.
func (h *Handler) DeleteWin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

// RestoreWin brings a win back from the trash.
func (h *Handler) RestoreWin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "restored"})
}

// ListDeleted lists the trash, most recently deleted first.
func (h *Handler) ListDeleted(c *gin.Context) {
	entries, err := h.svc.Deleted(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]WinView, 0, len(entries))
	for _, e := range entries {
		v := newWinView(e.Entry)
		v.DeletedAt = e.DeletedAt
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"wins": views, "count": len(views)})
}

// Purge permanently removes old deletions.
func (h *Handler) Purge(c *gin.Context) {
	var input PurgeInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	hours := h.retentionHours
	if input.OlderThanHours != nil {
		if *input.OlderThanHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "older_than_hours must not be negative"})
			return
		}
		hours = *input.OlderThanHours
	}

	n, err := h.svc.Purge(c.Request.Context(), hours)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": n, "older_than_hours": hours})
}

// Graph returns the tag co-occurrence graph.
func (h *Handler) Graph(c *gin.Context) {
	g, err := h.svc.Graph(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Chains returns chained groups and unchained wins.
func (h *Handler) Chains(c *gin.Context) {
	grouped, err := h.svc.Chained(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := struct {
		Chains    [][]WinView `json:"chains"`
		Unchained []WinView   `json:"unchained"`
	}{
		Chains:    [][]WinView{},
		Unchained: []WinView{},
	}
	for _, group := range chains.Chains(grouped) {
		views := make([]WinView, 0, len(group))
		for _, e := range group {
			views = append(views, newWinView(e))
		}
		out.Chains = append(out.Chains, views)
	}
	for _, g := range grouped {
		if _, ok := g.Chain(); !ok {
			out.Unchained = append(out.Unchained, newWinView(g.Entry))
		}
	}
	c.JSON(http.StatusOK, out)
}

// Classify returns the tags inferred for a text without storing it.
func (h *Handler) Classify(c *gin.Context) {
	var input ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": h.svc.Classify(c.Request.Context(), input.Text)})
}
