package model

import "time"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Optimization defaults applied to new member groups
	DefaultAllowableRatio float64  `json:"default_allowable_ratio"`
	DefaultProfiles       []string `json:"default_profiles"`
	RatioBandStep         float64  `json:"ratio_band_step"`
	ContainmentTolerance  float64  `json:"containment_tolerance"`

	// Analysis backend
	AnalysisPollInterval time.Duration `json:"analysis_poll_interval"`
	AnalysisMaxWait      time.Duration `json:"analysis_max_wait"`

	// Desktop helper bridge
	BridgeNetwork    string        `json:"bridge_network"` // "unix" or "tcp"
	BridgeAddress    string        `json:"bridge_address"`
	BridgeMaxRetries int           `json:"bridge_max_retries"`
	BridgeRetryDelay time.Duration `json:"bridge_retry_delay"`
	BridgeTimeout    time.Duration `json:"bridge_timeout"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultAllowableRatio: 1.0,
		DefaultProfiles:       SectionNames(SectionsByFamily("ISMB")),
		RatioBandStep:         0.5,
		ContainmentTolerance:  DefaultTolerance,
		AnalysisPollInterval:  time.Second,
		AnalysisMaxWait:       30 * time.Minute,
		BridgeNetwork:         "unix",
		BridgeAddress:         "/tmp/STAAD_HELPER_PIPE",
		BridgeMaxRetries:      3,
		BridgeRetryDelay:      time.Second,
		BridgeTimeout:         10 * time.Second,
		RecentProjects:        []string{},
		LogLevel:              "info",
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentProjects {
		if p != path && len(out) < max {
			out = append(out, p)
		}
	}
	c.RecentProjects = out
}
