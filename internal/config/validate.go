package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var knownFormats = map[string]bool{
	"json":  true,
	"csv":   true,
	"excel": true,
	"xml":   true,
}

// NormalizeAndValidate fills defaults and returns a normalized copy plus the
// validation outcome. Errors are fatal at the boundary; warnings are just
// logged by the caller.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.Upwork.MaxItems <= 0 {
		out.Upwork.MaxItems = 100
	}
	if out.Upwork.MaxPages <= 0 {
		out.Upwork.MaxPages = 1
	}
	if out.Upwork.DelaySeconds <= 0 {
		out.Upwork.DelaySeconds = 2.0
	}
	if strings.TrimSpace(out.Export.Format) == "" {
		out.Export.Format = "json"
	}
	out.Export.Format = strings.ToLower(strings.TrimSpace(out.Export.Format))
	if strings.TrimSpace(out.Export.OutputDir) == "" {
		out.Export.OutputDir = "data"
	}
	if strings.TrimSpace(out.Export.FilePrefix) == "" {
		out.Export.FilePrefix = "upwork_jobs"
	}

	if len(out.Upwork.Templates()) == 0 {
		res.addErr("upwork.searchUrlTemplate must be provided")
	}
	if !knownFormats[out.Export.Format] {
		res.addErr("export.format %q is not one of json, csv, excel, xml", out.Export.Format)
	}

	if out.Upwork.DelaySeconds < 0.5 {
		res.addWarn("upwork.delaySeconds is very low (%.2f) and may trip rate limits.", out.Upwork.DelaySeconds)
	}
	if out.Upwork.MaxItems > 1000 {
		res.addWarn("upwork.maxItems is large (%d); expect long runs.", out.Upwork.MaxItems)
	}

	return out, res
}
