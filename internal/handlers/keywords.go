package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"keywatch/internal/config"
	"keywatch/internal/models"
	"keywatch/internal/store"
)

// ChannelKeywords is one channel's section on the keywords page.
type ChannelKeywords struct {
	ChannelID string
	Keywords  []models.Keyword
}

// KeywordPageHandler renders the keyword management page.
type KeywordPageHandler struct {
	store store.Store
	cfg   *config.Config
}

// NewKeywordPageHandler creates a new keyword page handler.
func NewKeywordPageHandler(s store.Store, cfg *config.Config) *KeywordPageHandler {
	return &KeywordPageHandler{store: s, cfg: cfg}
}

// Index renders all keywords grouped by channel.
func (h *KeywordPageHandler) Index(c fiber.Ctx) error {
	keywords, err := h.store.List(c.Context())
	if err != nil {
		slog.Error("failed to list keywords for page", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "unable to fetch keywords")
	}

	data := MergeBranding(fiber.Map{
		"Channels": GroupByChannel(keywords),
	}, h.cfg)

	return c.Render("index", data, "layouts/main")
}

// GroupByChannel groups keywords by channel, keeping channels in order of
// first appearance and keywords in list order.
func GroupByChannel(keywords []models.Keyword) []ChannelKeywords {
	var groups []ChannelKeywords
	index := make(map[string]int)
	for _, kw := range keywords {
		i, ok := index[kw.ChannelID]
		if !ok {
			i = len(groups)
			index[kw.ChannelID] = i
			groups = append(groups, ChannelKeywords{ChannelID: kw.ChannelID})
		}
		groups[i].Keywords = append(groups[i].Keywords, kw)
	}
	return groups
}
