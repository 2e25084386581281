package api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"keywatch/internal/metrics"
	"keywatch/internal/models"
	"keywatch/internal/store"
	"keywatch/internal/validation"
)

// KeywordHandler handles keyword CRUD operations via JSON API.
type KeywordHandler struct {
	store   store.Store
	metrics *metrics.Metrics
}

// NewKeywordHandler creates a new API keyword handler. m may be nil.
func NewKeywordHandler(s store.Store, m *metrics.Metrics) *KeywordHandler {
	return &KeywordHandler{store: s, metrics: m}
}

// Register mounts the keyword routes on r.
func (h *KeywordHandler) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/:id", h.Delete)
}

// List returns every keyword.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	keywords, err := h.store.List(c.Context())
	if err != nil {
		slog.Error("failed to list keywords", "error", err)
		h.metrics.RecordOperation("list", metrics.OutcomeError)
		return jsonError(c, fiber.StatusInternalServerError, "unable to fetch keywords")
	}

	h.metrics.RecordOperation("list", metrics.OutcomeOK)
	return c.JSON(keywords)
}

// Create adds a keyword for a channel.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	var body models.KeywordInput
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		h.metrics.RecordOperation("create", metrics.OutcomeInvalid)
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	kw, err := h.store.Create(c.Context(), body.ChannelID, body.Text)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			h.metrics.RecordOperation("create", metrics.OutcomeInvalid)
			return jsonError(c, fiber.StatusBadRequest, verrs.Error())
		case errors.Is(err, store.ErrDuplicateKeyword):
			h.metrics.RecordOperation("create", metrics.OutcomeDuplicate)
			return jsonError(c, fiber.StatusBadRequest, store.ErrDuplicateKeyword.Error())
		default:
			slog.Error("failed to create keyword", "channel_id", body.ChannelID, "error", err)
			h.metrics.RecordOperation("create", metrics.OutcomeError)
			return jsonError(c, fiber.StatusInternalServerError, "unable to add keyword")
		}
	}

	h.metrics.RecordOperation("create", metrics.OutcomeOK)
	return c.Status(fiber.StatusCreated).JSON(kw)
}

// Delete removes a keyword by id. Deleting an unknown id also returns 204.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")

	err := h.store.Delete(c.Context(), id)
	switch {
	case err == nil:
		h.metrics.RecordOperation("delete", metrics.OutcomeOK)
	case errors.Is(err, store.ErrKeywordNotFound):
		slog.Debug("delete of unknown keyword", "id", id)
		h.metrics.RecordOperation("delete", metrics.OutcomeNotFound)
	default:
		slog.Error("failed to delete keyword", "id", id, "error", err)
		h.metrics.RecordOperation("delete", metrics.OutcomeError)
		return jsonError(c, fiber.StatusInternalServerError, "unable to delete keyword")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
