package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/seatmap-parser/internal/app/config"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/seatmap-parser/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
// A nil limiter disables rate limiting.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	limiter httptransport.Limiter,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1/seatmaps", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
			httptransport.LimitBody(cfg.Converter.MaxDocumentBytes),
		)

		if limiter != nil && cfg.Converter.RateLimitRPS > 0 {
			router.Use(httptransport.RateLimit(limiter, cfg.Converter.RateLimitRPS))
		}

		router.Post("/convert", httptransport.MakeHandlerFunc(
			endpts.ConverterEndpoint.ConvertSeatMap,
			httptransport.DecodeRequest[dto.ConvertRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/seats", httptransport.MakeHandlerFunc(
			endpts.ConverterEndpoint.ListSeats,
			httptransport.DecodeRequest[dto.SeatListRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
