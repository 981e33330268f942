// Package services contains the business logic behind the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coloradocarlos/epc-redistricting-2023/internal/config"
	"github.com/coloradocarlos/epc-redistricting-2023/internal/operations"
)

// ReportFile describes a generated CSV report on disk.
type ReportFile struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// RunSummary describes a completed plan run.
type RunSummary struct {
	Plan     string       `json:"plan"`
	Year     int          `json:"year"`
	Duration string       `json:"duration"`
	Steps    []StepResult `json:"steps"`
	Reports  []string     `json:"reports,omitempty"`
}

// StepResult is the outcome of a single pipeline step.
type StepResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// ReportService exposes generated reports and plan runs.
type ReportService struct {
	cfg     *config.Config
	logger  *slog.Logger
	manager *operations.Manager
}

// NewReportService creates a report service backed by the configured
// reports directory.
func NewReportService(cfg *config.Config, logger *slog.Logger) *ReportService {
	return &ReportService{
		cfg:     cfg,
		logger:  logger,
		manager: operations.NewManager(logger),
	}
}

// ListReports walks the reports directory and returns every CSV file,
// sorted by relative path.
func (s *ReportService) ListReports(ctx context.Context) ([]ReportFile, error) {
	root := s.cfg.Paths.ReportPath()

	reports := make([]ReportFile, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		reports = append(reports, ReportFile{
			Name:     d.Name(),
			Path:     filepath.ToSlash(rel),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return reports, nil
		}
		return nil, fmt.Errorf("list reports: %w", err)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	s.logger.DebugContext(ctx, "listed reports", "count", len(reports))
	return reports, nil
}

// OpenReport opens a report by its relative path. Paths that escape
// the reports directory are rejected.
func (s *ReportService) OpenReport(ctx context.Context, relPath string) (*os.File, os.FileInfo, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return nil, nil, fmt.Errorf("invalid report path: %s", relPath)
	}

	full := s.cfg.Paths.ReportPath(cleaned)
	info, err := os.Stat(full)
	if err != nil {
		return nil, nil, fmt.Errorf("report %s: %w", relPath, err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("report %s: is a directory", relPath)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, nil, fmt.Errorf("report %s: %w", relPath, err)
	}

	s.logger.InfoContext(ctx, "serving report", "path", cleaned, "size", info.Size())
	return f, info, nil
}

// RunPlan executes the full pipeline for a configured redistricting plan
// and returns a summary of the run.
func (s *ReportService) RunPlan(ctx context.Context, planName string) (*RunSummary, error) {
	plan, err := s.cfg.Plan(planName)
	if err != nil {
		return nil, err
	}

	steps, err := operations.PlanSteps(s.cfg, planName, s.logger)
	if err != nil {
		return nil, err
	}

	state, runErr := s.manager.Run(ctx, steps)

	summary := &RunSummary{
		Plan:     planName,
		Year:     plan.Year,
		Duration: time.Since(state.StartTime).Round(time.Millisecond).String(),
	}
	for _, st := range state.StepStates() {
		summary.Steps = append(summary.Steps, StepResult{
			ID:       st.ID,
			Name:     st.Name,
			Status:   string(st.CurrentStatus()),
			Message:  st.Message,
			Error:    st.Error,
			Duration: st.Duration().Round(time.Millisecond).String(),
		})
	}
	if written, ok := state.Get(operations.KeyReportsWritten); ok {
		if paths, ok := written.([]string); ok {
			summary.Reports = paths
		}
	}

	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}
