package statshandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	ledgerevents "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain/events"
	statsservice "github.com/tarok-klub/tarok-backend/app/modules/stats/application"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
)

// Handlers consumes ledger events to keep the stats projections current.
type Handlers interface {
	HandleGameFinished(msg *message.Message) error
}

type StatsHandlers struct {
	service statsservice.Service
	logger  *slog.Logger
}

// NewStatsHandlers creates a new StatsHandlers.
func NewStatsHandlers(service statsservice.Service, logger *slog.Logger) *StatsHandlers {
	return &StatsHandlers{
		service: service,
		logger:  logger,
	}
}

// HandleGameFinished refreshes the cached leaderboard after a game closes.
func (h *StatsHandlers) HandleGameFinished(msg *message.Message) error {
	ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))

	var payload ledgerevents.GameFinishedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// A malformed payload will never parse; drop it instead of retrying.
		h.logger.ErrorContext(ctx, "Dropping unparseable game finished event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil
	}

	h.logger.InfoContext(ctx, "Game finished, refreshing leaderboard",
		attr.UUID("game_id", payload.GameID),
		attr.Int("standings", len(payload.Standings)),
	)

	if err := h.service.RefreshLeaderboard(ctx); err != nil {
		return fmt.Errorf("failed to refresh leaderboard for game %s: %w", payload.GameID, err)
	}
	return nil
}

var _ Handlers = (*StatsHandlers)(nil)
