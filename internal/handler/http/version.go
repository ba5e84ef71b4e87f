package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-data/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	if _, err := utils.WriteJSON(w, info, http.StatusOK); err != nil {
		h.logger.Err(err).Str("func", "*Handler.getServerVersion").Msg("failed to write version")
	}
}
