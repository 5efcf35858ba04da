package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotws/pkg/fix"
	"github.com/yaklabco/gotws/pkg/runner"
	"github.com/yaklabco/gotws/pkg/whitespace"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"

	// sarifRuleID is the only rule gotws reports.
	sarifRuleID = "trailing-whitespace"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single run. Columns are counted in Unicode code
// points, matching whitespace.LineSpan.
type SARIFRun struct {
	Tool       SARIFTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription SARIFMessage    `json:"shortDescription"`
	DefaultConfig    SARIFRuleConfig `json:"defaultConfiguration"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult is one whitespace span.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains plain text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes a text region. Lines and columns are 1-based and
// EndColumn is exclusive; byte regions are used by fixes.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement deletes a byte region. Trims never insert text.
type SARIFReplacement struct {
	DeletedRegion SARIFRegion `json:"deletedRegion"`
}

// SARIFReporter formats results as SARIF 2.1.0 for code scanning services.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, err := r.buildOutput(result)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) (*SARIFOutput, error) {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "gotws",
				Version:        r.opts.Version,
				InformationURI: "https://github.com/yaklabco/gotws",
				Rules: []SARIFRule{{
					ID:   sarifRuleID,
					Name: "TrailingWhitespace",
					ShortDescription: SARIFMessage{
						Text: "Line ends with trailing whitespace",
					},
					DefaultConfig: SARIFRuleConfig{Level: "warning"},
				}},
			},
		},
		ColumnKind: "unicodeCodePoints",
		Results:    make([]SARIFResult, 0),
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil || len(file.Spans) == 0 {
				continue
			}

			results, err := r.fileResults(&file)
			if err != nil {
				return nil, err
			}
			run.Results = append(run.Results, results...)
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}, nil
}

// fileResults maps each span of file to a result. Spans of a written trim
// are already gone from disk, so they are reported as notes without fixes.
func (r *SARIFReporter) fileResults(file *runner.FileOutcome) ([]SARIFResult, error) {
	uri := displayPath(r.opts.WorkingDir, file.Path)

	var edits []fix.TextEdit
	if !file.Written && file.Snapshot != nil {
		var err error

		edits, err = fix.DeletionsForSpans(file.Snapshot, file.Spans)
		if err != nil {
			return nil, fmt.Errorf("build SARIF fixes for %s: %w", uri, err)
		}
	}

	results := make([]SARIFResult, 0, len(file.Spans))

	for idx, span := range file.Spans {
		res := SARIFResult{
			RuleID:  sarifRuleID,
			Level:   "warning",
			Message: SARIFMessage{Text: "Line ends with " + spanMessage(span)},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: uri},
					Region: SARIFRegion{
						StartLine:   span.Line + 1,
						StartColumn: span.StartColumn + 1,
						EndColumn:   span.EndColumn + 1,
					},
				},
			}},
		}

		if file.Written {
			res.Level = "note"
			res.Message.Text = "Trimmed " + spanMessage(span)
		}

		if idx < len(edits) {
			offset := edits[idx].StartOffset
			length := edits[idx].EndOffset - edits[idx].StartOffset

			res.Fixes = []SARIFFix{{
				Description: SARIFMessage{Text: "Remove trailing whitespace"},
				ArtifactChanges: []SARIFArtifactChange{{
					ArtifactLocation: SARIFArtifactLocation{URI: uri},
					Replacements: []SARIFReplacement{{
						DeletedRegion: SARIFRegion{ByteOffset: &offset, ByteLength: &length},
					}},
				}},
			}}
		}

		results = append(results, res)
	}

	return results, nil
}

func spanMessage(span whitespace.LineSpan) string {
	count := span.EndColumn - span.StartColumn
	if count == 1 {
		return "trailing whitespace (1 character)"
	}
	return fmt.Sprintf("trailing whitespace (%d characters)", count)
}
