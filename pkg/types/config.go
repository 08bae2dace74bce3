package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyst/0.1"). Per prd001-acquisition R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AcquisitionConfig holds settings for the acquisition stage.
// Per prd001-acquisition R2.6, R5.1-R5.2.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// PapersDir is the base directory for papers (contains raw/, metadata/, markdown/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// ConversionBackend identifies the PDF conversion tool.
// Per prd002-conversion R5.1.
type ConversionBackend string

const (
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConversionConfig holds settings for the conversion stage.
// Per prd002-conversion R5.1-R5.2.
type ConversionConfig struct {
	// Backend selects the conversion tool.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// PapersDir is the base directory for papers (contains raw/, metadata/, markdown/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// StoreConfig holds settings for the paper store.
// Per prd008-analysis R1.1.
type StoreConfig struct {
	// PapersDir is the base directory for papers (contains raw/, metadata/,
	// markdown/, index/). The SQLite database lives in index/papers.db.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// AnalysisConfig holds thresholds for the classification workflow.
// Per prd008-analysis R3.1-R3.3.
type AnalysisConfig struct {
	// AutoApproveThreshold is the overall confidence at or above which a
	// classification completes without review (default 0.8).
	AutoApproveThreshold float64 `json:"auto_approve_threshold" yaml:"auto_approve_threshold"`

	// ManualReviewThreshold is the overall confidence at or above which a
	// classification is queued for manual review instead of being marked
	// failed (default 0.5).
	ManualReviewThreshold float64 `json:"manual_review_threshold" yaml:"manual_review_threshold"`
}

// Defaults fills zero thresholds with the standard values.
func (c AnalysisConfig) Defaults() AnalysisConfig {
	if c.AutoApproveThreshold == 0 {
		c.AutoApproveThreshold = 0.8
	}
	if c.ManualReviewThreshold == 0 {
		c.ManualReviewThreshold = 0.5
	}
	return c
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion"`
	Store       StoreConfig       `json:"store" yaml:"store"`
	Analysis    AnalysisConfig    `json:"analysis" yaml:"analysis"`
}
