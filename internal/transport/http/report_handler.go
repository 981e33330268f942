// Package http contains the HTTP transport layer for the report server.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/coloradocarlos/epc-redistricting-2023/internal/errors"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/services"
)

// ReportProvider is the service interface the report handler depends on.
type ReportProvider interface {
	ListReports(ctx context.Context) ([]services.ReportFile, error)
	OpenReport(ctx context.Context, relPath string) (*os.File, os.FileInfo, error)
	RunPlan(ctx context.Context, planName string) (*services.RunSummary, error)
}

// ReportHandler serves generated reports and triggers plan runs.
type ReportHandler struct {
	service ReportProvider
	logger  *slog.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(service ReportProvider, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// Routes returns the router for report endpoints.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/download/*", h.Download)
	return r
}

// List returns every generated report file.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list reports", "error", err)
		apierrors.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// Download streams a report file as a CSV attachment.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	relPath := chi.URLParam(r, "*")
	if relPath == "" {
		apierrors.HandleError(w, r, apierrors.ErrValidation("path", "report path is required"))
		return
	}

	f, info, err := h.service.OpenReport(r.Context(), relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			apierrors.HandleError(w, r, apierrors.NotFoundError("report "+relPath))
			return
		}
		apierrors.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+info.Name()+"\"")
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// RunPlan executes the pipeline for a configured plan.
func (h *ReportHandler) RunPlan(w http.ResponseWriter, r *http.Request) {
	planName := chi.URLParam(r, "plan")
	if planName == "" {
		apierrors.HandleError(w, r, apierrors.ErrValidation("plan", "plan name is required"))
		return
	}

	summary, err := h.service.RunPlan(r.Context(), planName)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "plan run failed", "plan", planName, "error", err)
		if summary == nil {
			apierrors.HandleError(w, r, apierrors.NotFoundError("plan "+planName))
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error": apierrors.RunFailedError(err),
			"run":   summary,
		})
		return
	}

	render.JSON(w, r, map[string]any{"run": summary})
}
