package preflight

import (
	"path/filepath"

	"mkvrobot/internal/config"
	"mkvrobot/internal/services/makemkv"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("MakeMKV", cfg.MakeMKV.Binary),
	}
	if device := makemkv.ParseSource(cfg.MakeMKV.Device).DevicePath(); device != "" {
		results = append(results, CheckDevice("Optical drive", device))
	}
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if cfg.Store.Enabled {
		results = append(results, CheckDirectoryAccess("Scan store", filepath.Dir(cfg.Store.Path)))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
