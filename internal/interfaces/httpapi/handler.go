package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fplcore/analysis-api/internal/domain/analysis"
	"github.com/fplcore/analysis-api/internal/platform/cache"
	"github.com/fplcore/analysis-api/internal/platform/logging"
	"github.com/fplcore/analysis-api/internal/usecase"
)

type Handler struct {
	analysisService *usecase.AnalysisService
	cache           *cache.Store
	logger          *logging.Logger
	validator       *validator.Validate
}

// NewHandler wires the analysis pipeline behind the HTTP surface. cacheStore
// may be nil, in which case every request runs the pipeline.
func NewHandler(analysisService *usecase.AnalysisService, cacheStore *cache.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analysisService: analysisService,
		cache:           cacheStore,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Analyse runs the snapshot pipeline and returns the aggregated result as a
// bare JSON object. The optional gameweeks query parameter overrides how many
// recent gameweeks feed the run.
func (h *Handler) Analyse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Analyse")
	defer span.End()

	count, err := h.parseGameweeksParam(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.runAnalysis(ctx, count)
	if err != nil {
		h.logger.ErrorContext(ctx, "analysis run failed", "gameweeks", count, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) parseGameweeksParam(ctx context.Context, r *http.Request) (int, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.parseGameweeksParam")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("gameweeks"))
	if raw == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: gameweeks must be an integer, got %q", usecase.ErrInvalidInput, raw)
	}
	if err := h.validateRequest(ctx, analyseRequest{Gameweeks: count}); err != nil {
		return 0, err
	}
	return count, nil
}

// runAnalysis serves from the response cache when one is configured;
// concurrent misses for the same count collapse into a single pipeline run.
func (h *Handler) runAnalysis(ctx context.Context, count int) (analysis.Result, error) {
	if h.cache == nil {
		return h.analysisService.RunWithCount(ctx, count)
	}

	key := fmt.Sprintf("analyse:%d", count)
	value, err := h.cache.GetOrLoad(ctx, key, func() (any, error) {
		return h.analysisService.RunWithCount(ctx, count)
	})
	if err != nil {
		return analysis.Result{}, err
	}

	result, ok := value.(analysis.Result)
	if !ok {
		return analysis.Result{}, fmt.Errorf("unexpected cached value for %s", key)
	}
	return result, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type analyseRequest struct {
	Gameweeks int `validate:"omitempty,min=1,max=38"`
}
