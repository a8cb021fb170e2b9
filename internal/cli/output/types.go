package output

// LintSummary counts the results of a lint run.
type LintSummary struct {
	FilesLinted int `json:"files_linted"`
	FilesFixed  int `json:"files_fixed"`
	FilesFailed int `json:"files_failed"`
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Info        int `json:"info"`
}

// LintDiagnostic is one result in JSON output.
type LintDiagnostic struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Raw      string `json:"raw"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Dialect     string           `json:"dialect"`
	Fixed       bool             `json:"fixed,omitempty"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintOutput is the JSON document written by the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}
