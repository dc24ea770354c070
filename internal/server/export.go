package server

import (
	"database/sql"
	"net/http"

	"hockeycap/internal/export"
	"hockeycap/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ExportHandler serves GET /export/{team}/capsheet.xlsx and .pdf.
func ExportHandler(teamSvc *service.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.PathValue("team")
		logger := zerolog.Ctx(r.Context()).With().Str("team", teamID).Logger()

		var (
			build       func(*service.Dashboard) ([]byte, error)
			contentType string
		)
		switch r.PathValue("file") {
		case "capsheet.xlsx":
			build, contentType = export.BuildCapSheetXLSX, xlsxContentType
		case "capsheet.pdf":
			build, contentType = export.BuildCapSheetPDF, pdfContentType
		default:
			http.NotFound(w, r)
			return
		}

		d, err := teamSvc.Dashboard(r.Context(), teamID)
		if err != nil {
			err = toConnectError(r.Context(), err)
			http.Error(w, err.Error(), connectHTTPStatus(err))
			return
		}

		data, err := build(d)
		if err != nil {
			logger.Error().Err(err).Msg("failed to render cap sheet")
			http.Error(w, "failed to render cap sheet", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+teamID+"-"+r.PathValue("file")+`"`)
		_, _ = w.Write(data)
	}
}

// HealthHandler reports whether the snapshot store answers.
func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "snapshot store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

func connectHTTPStatus(err error) int {
	switch connect.CodeOf(err) {
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeUnavailable:
		return http.StatusServiceUnavailable
	case connect.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
