package hazards

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/render"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, h.logger, err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	render.JSON(w, h.logger, code, v)
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	return render.Logger(h.logger, r)
}

// voteStatus maps a vote outcome to a status code. A repeated vote is not
// an error.
func voteStatus(res domain.VoteResult) int {
	switch res {
	case domain.VoteAccepted, domain.VoteAlreadyCast:
		return http.StatusOK
	case domain.VoteUnknownHazard:
		return http.StatusNotFound
	case domain.VoteRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
