package cli

import (
	"time"

	"github.com/bnema/cardver/internal/application/usecase"
	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/domain/version"
)

// Report is the machine readable result of a check, emitted by --json.
type Report struct {
	RunID           string               `json:"run_id"`
	OK              bool                 `json:"ok"`
	CardType        string               `json:"card_type,omitempty"`
	ManifestPath    string               `json:"manifest_path"`
	ArtifactPath    string               `json:"artifact_path"`
	Versions        map[string]string    `json:"versions"`
	DefinedElements []string             `json:"defined_elements,omitempty"`
	Registrations   []ReportRegistration `json:"registrations,omitempty"`
	Problems        []ReportProblem      `json:"problems"`
	StartedAt       time.Time            `json:"started_at"`
	DurationMS      int64                `json:"duration_ms"`
}

// ReportRegistration is one entry found in the card registry.
type ReportRegistration struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version"`
}

// ReportProblem is one failure of a check.
type ReportProblem struct {
	Kind    string `json:"kind"`
	Source  string `json:"source,omitempty"`
	Value   string `json:"value,omitempty"`
	Skew    string `json:"skew,omitempty"`
	Message string `json:"message"`
}

// NewReport converts a check output into its JSON form.
func NewReport(out *usecase.CheckVersionConsistencyOutput) Report {
	r := Report{
		RunID:           out.RunID,
		OK:              out.OK,
		CardType:        out.CardType,
		ManifestPath:    out.ManifestPath,
		ArtifactPath:    out.ArtifactPath,
		Versions:        make(map[string]string, len(out.Values)),
		DefinedElements: out.DefinedElements,
		Problems:        make([]ReportProblem, 0, len(out.Problems)),
		StartedAt:       out.StartedAt,
		DurationMS:      out.Duration.Milliseconds(),
	}
	for src, v := range out.Values {
		r.Versions[string(src)] = v
	}
	for _, reg := range out.Registrations {
		r.Registrations = append(r.Registrations, ReportRegistration{Type: reg.Type, Name: reg.Name, Version: reg.Version})
	}
	for _, p := range out.Problems {
		r.Problems = append(r.Problems, ReportProblem{
			Kind:    string(p.Kind),
			Source:  string(p.Source),
			Value:   p.Value,
			Skew:    problemSkew(p),
			Message: p.Error(),
		})
	}
	return r
}

// NewCheckReport converts a check output into its display model.
func NewCheckReport(out *usecase.CheckVersionConsistencyOutput) styles.CheckReport {
	failing := make(map[entity.VersionSource]bool)
	for _, p := range out.Problems {
		if p.Source != "" {
			failing[p.Source] = true
		}
		if p.Kind == entity.KindVersionMismatch && p.Against != "" {
			failing[p.Against] = true
		}
	}

	report := styles.CheckReport{
		OK:           out.OK,
		CardType:     out.CardType,
		ManifestPath: out.ManifestPath,
		ArtifactPath: out.ArtifactPath,
		RunID:        out.RunID,
		Duration:     out.Duration,
	}
	for _, src := range entity.VersionSources {
		v, ok := out.Version(src)
		report.Sources = append(report.Sources, styles.SourceLine{
			Source:  string(src),
			Value:   v,
			Read:    ok,
			Failing: ok && failing[src],
		})
	}
	for _, p := range out.Problems {
		msg := p.Error()
		if skew := problemSkew(p); skew != "" {
			msg += " (" + skew + ")"
		}
		report.Problems = append(report.Problems, styles.ProblemLine{Kind: string(p.Kind), Message: msg})
	}
	return report
}

// problemSkew is "behind" or "ahead" for a mismatch between strict versions.
func problemSkew(p *entity.CheckError) string {
	if p.Kind != entity.KindVersionMismatch {
		return ""
	}
	return version.Skew(p.Value, p.Expected)
}
