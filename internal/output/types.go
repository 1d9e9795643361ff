package output

// FlagsData is the top-level JSON output for the flags command.
type FlagsData struct {
	WorkspaceRoot string         `json:"workspace_root,omitempty"`
	Packages      []PackageFlags `json:"packages"`
	Warnings      []string       `json:"warnings"`
}

// PackageFlags holds the merged lint flags of one package.
type PackageFlags struct {
	Package          string   `json:"package"`
	Dir              string   `json:"dir"`
	Flags            []string `json:"flags"`
	Command          []string `json:"command"`
	RequiredFeatures []string `json:"required_features,omitempty"`
}

// CheckData is the top-level JSON output for the check command.
type CheckData struct {
	Results  []CheckResult `json:"results"`
	Warnings []string      `json:"warnings"`
	Success  bool          `json:"success"`
}

// CheckResult holds the outcome of one compiler run.
type CheckResult struct {
	Package    string   `json:"package"`
	Command    []string `json:"command"`
	ExitCode   int      `json:"exit_code"`
	Stdout     string   `json:"stdout"`
	Stderr     string   `json:"stderr"`
	DurationMS int64    `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
	Cancelled  bool     `json:"cancelled,omitempty"`
}
