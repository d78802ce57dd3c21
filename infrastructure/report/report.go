package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rios0rios0/depaudit/domain"
)

// Format selects the report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatText, FormatJSON, FormatMarkdown:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, or markdown)", raw)
	}
}

// Options control which results are rendered and how.
type Options struct {
	Format       Format
	ShowUpToDate bool // Up-to-date lines are suppressed by default
}

// Status colors, bentoolkit-style.
//
//nolint:gochecknoglobals // color palette shared by all emitters
var (
	updateColor        = color.New(color.FgYellow)
	upToDateColor      = color.New(color.FgGreen)
	notInRegistryColor = color.New(color.FgMagenta)
	failedColor        = color.New(color.FgRed)
	ignoredColor       = color.New(color.Faint)
)

// NoColor disables colored output globally.
func NoColor() {
	color.NoColor = true
}

// Emitter renders an audit report to a writer, one line per package.
type Emitter struct {
	out  io.Writer
	opts Options
}

// NewEmitter creates an emitter for the given writer.
func NewEmitter(out io.Writer, opts Options) *Emitter {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return &Emitter{out: out, opts: opts}
}

// Emit renders the whole report in the configured format.
func (e *Emitter) Emit(rep *domain.Report) error {
	switch e.opts.Format {
	case FormatJSON:
		return e.emitJSON(rep)
	case FormatMarkdown:
		return e.emitMarkdown(rep)
	default:
		return e.emitText(rep)
	}
}

// FormatLine renders the canonical one-line form of a result. Transitive
// packages carry the sorted roots that require them.
func FormatLine(res domain.UpdateResult) string {
	var line string
	switch res.Status {
	case domain.StatusUpdateAvailable:
		line = fmt.Sprintf("%s: %s → %s", res.Name, res.InstalledVersion, res.LatestVersion)
	case domain.StatusUpToDate:
		line = fmt.Sprintf("%s: %s (up to date)", res.Name, res.InstalledVersion)
	case domain.StatusNotInRegistry:
		line = fmt.Sprintf("%s: not in registry", res.Name)
	case domain.StatusLookupFailed:
		line = fmt.Sprintf("%s: lookup failed: %s", res.Name, res.Reason)
	case domain.StatusIgnored:
		line = fmt.Sprintf("%s: %s (ignored)", res.Name, res.InstalledVersion)
	default:
		line = fmt.Sprintf("%s: %s", res.Name, res.InstalledVersion)
	}

	if !res.Direct && len(res.Parents) > 0 {
		line += " (dependency of: " + strings.Join(res.Parents, ", ") + ")"
	}
	return line
}

func statusColor(status domain.UpdateStatus) *color.Color {
	switch status {
	case domain.StatusUpdateAvailable:
		return updateColor
	case domain.StatusUpToDate:
		return upToDateColor
	case domain.StatusNotInRegistry:
		return notInRegistryColor
	case domain.StatusLookupFailed:
		return failedColor
	case domain.StatusIgnored:
		return ignoredColor
	default:
		return color.New(color.Reset)
	}
}

func (e *Emitter) emitText(rep *domain.Report) error {
	for _, res := range rep.Results {
		if res.Status == domain.StatusUpToDate && !e.opts.ShowUpToDate {
			continue
		}
		if _, err := statusColor(res.Status).Fprintln(e.out, FormatLine(res)); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
	}

	summary := fmt.Sprintf(
		"%d packages checked: %d updates available, %d up to date, %d not in registry, %d failed, %d ignored",
		rep.Audited, rep.UpdateCount, rep.UpToDateCount,
		rep.NotInRegistryCount, rep.FailedCount, rep.IgnoredCount,
	)
	if _, err := fmt.Fprintln(e.out, summary); err != nil {
		return fmt.Errorf("failed to write report summary: %w", err)
	}
	return nil
}

// jsonResult mirrors domain.UpdateResult with stable field names for
// machine consumers.
type jsonResult struct {
	Name             string   `json:"name"`
	InstalledVersion string   `json:"installed_version"`
	LatestVersion    string   `json:"latest_version,omitempty"`
	Status           string   `json:"status"`
	Direct           bool     `json:"direct"`
	Parents          []string `json:"required_by,omitempty"`
	Reason           string   `json:"reason,omitempty"`
}

type jsonReport struct {
	Total         int          `json:"total"`
	Audited       int          `json:"audited"`
	Updates       int          `json:"updates"`
	UpToDate      int          `json:"up_to_date"`
	NotInRegistry int          `json:"not_in_registry"`
	Failed        int          `json:"failed"`
	Ignored       int          `json:"ignored"`
	Results       []jsonResult `json:"results"`
}

func (e *Emitter) emitJSON(rep *domain.Report) error {
	out := jsonReport{
		Total:         rep.Total,
		Audited:       rep.Audited,
		Updates:       rep.UpdateCount,
		UpToDate:      rep.UpToDateCount,
		NotInRegistry: rep.NotInRegistryCount,
		Failed:        rep.FailedCount,
		Ignored:       rep.IgnoredCount,
		Results:       make([]jsonResult, 0, len(rep.Results)),
	}
	for _, res := range rep.Results {
		out.Results = append(out.Results, jsonResult{
			Name:             res.Name,
			InstalledVersion: res.InstalledVersion,
			LatestVersion:    res.LatestVersion,
			Status:           res.Status.String(),
			Direct:           res.Direct,
			Parents:          res.Parents,
			Reason:           res.Reason,
		})
	}

	encoder := json.NewEncoder(e.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}

func (e *Emitter) emitMarkdown(rep *domain.Report) error {
	var sb strings.Builder
	sb.WriteString("| Package | Installed | Latest | Status | Required by |\n")
	sb.WriteString("|---------|-----------|--------|--------|-------------|\n")

	for _, res := range rep.Results {
		if res.Status == domain.StatusUpToDate && !e.opts.ShowUpToDate {
			continue
		}
		latest := res.LatestVersion
		if latest == "" {
			latest = "-"
		}
		requiredBy := "-"
		if !res.Direct && len(res.Parents) > 0 {
			requiredBy = strings.Join(res.Parents, ", ")
		}
		sb.WriteString(fmt.Sprintf(
			"| %s | %s | %s | %s | %s |\n",
			res.Name, res.InstalledVersion, latest, res.Status, requiredBy,
		))
	}

	if _, err := io.WriteString(e.out, sb.String()); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}
