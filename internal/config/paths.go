package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains the file system layout for input data and reports.
// All relative paths are resolved against BaseDir.
type PathsConfig struct {
	// BaseDir is the data workspace root. Defaults to the current
	// working directory so the tools can run next to their data files.
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
	// SOSDir holds Secretary of State precinct-level result files.
	SOSDir string `yaml:"sos_dir" envconfig:"SOS_DIR"`
	// CountyDir holds county-published files (precinct tables, BAFs,
	// SOVC exports, QGIS attribute tables).
	CountyDir string `yaml:"county_dir" envconfig:"COUNTY_DIR"`
	// ReportsDir receives generated CSV reports.
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	// LogsDir receives log files.
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

func (p *PathsConfig) applyDefaults() {
	if p.BaseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			p.BaseDir = wd
		} else {
			p.BaseDir = "."
		}
	}
	if p.SOSDir == "" {
		p.SOSDir = "sos_files"
	}
	if p.CountyDir == "" {
		p.CountyDir = "epc_files"
	}
	if p.ReportsDir == "" {
		p.ReportsDir = "election_data"
	}
	if p.LogsDir == "" {
		p.LogsDir = "logs"
	}
}

// resolve joins a path with BaseDir unless it is already absolute.
func (p *PathsConfig) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// SOSPath returns the full path of a Secretary of State input file.
func (p *PathsConfig) SOSPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.resolve(p.SOSDir), filename)
}

// CountyPath returns the full path of a county input file.
func (p *PathsConfig) CountyPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.resolve(p.CountyDir), filename)
}

// ReportPath returns the full path of a generated report file.
func (p *PathsConfig) ReportPath(elem ...string) string {
	parts := append([]string{p.resolve(p.ReportsDir)}, elem...)
	return filepath.Join(parts...)
}

// LogPath returns the full path of a log file.
func (p *PathsConfig) LogPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.resolve(p.LogsDir), filename)
}

// InputPath resolves a configured input file reference. Absolute paths
// pass through; relative paths are joined against BaseDir, which lets
// the YAML registry reference files like "sos_files/2022...csv" directly.
func (p *PathsConfig) InputPath(path string) string {
	return p.resolve(path)
}

// EnsureDirectories creates the writable directories if missing.
func (p *PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.resolve(p.ReportsDir), p.resolve(p.LogsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
