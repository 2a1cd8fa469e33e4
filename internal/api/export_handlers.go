package api

import (
	"log/slog"
	"net/http"
)

// handleExportCSV streams the full data set as a CSV download. This stays a
// plain chi handler because huma's response model buffers JSON bodies.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="hatkhata_export.csv"`)

	if err := s.exporter.WriteCSV(w); err != nil {
		// Headers are already gone; all we can do is log and drop the conn.
		s.logger.Error("csv export failed",
			slog.String("remote", r.RemoteAddr),
			slog.Any("error", err))
	}
}
