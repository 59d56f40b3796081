package vehicle

import (
	"log/slog"
	"net/http"

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
