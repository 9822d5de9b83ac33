package manifest

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a manifest.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more manifest issues.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("manifest validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// ParseSession maps a session label to the morning flag.
func ParseSession(s string) (morning bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "am", SessionMorning:
		return true, true
	case "afternoon", "pm", SessionAfternoon:
		return false, true
	default:
		return false, false
	}
}

// Normalize trims whitespace, validates every entry, and converts the
// manifest into jobs in file order. All issues are reported at once.
func Normalize(spec Spec) ([]Job, error) {
	c := &issueCollector{}
	if spec.Version == 0 {
		c.add("version", "is required")
	} else if spec.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", spec.Version))
	}
	if len(spec.Jobs) == 0 {
		c.add("jobs", "must include at least one entry")
	}

	jobs := make([]Job, 0, len(spec.Jobs))
	seen := map[string]struct{}{}
	for i, js := range spec.Jobs {
		prefix := fmt.Sprintf("jobs[%d]", i)

		file := strings.TrimSpace(js.File)
		if file == "" {
			c.add(prefix+".file", "is required")
		} else if _, dup := seen[file]; dup {
			c.add(prefix+".file", fmt.Sprintf("duplicate file %q", file))
		} else {
			seen[file] = struct{}{}
		}

		if js.Year <= 0 {
			c.add(prefix+".year", "must be positive")
		}

		difficulty := strings.TrimSpace(js.Difficulty)
		if difficulty == "" {
			c.add(prefix+".difficulty", "is required")
		}

		morning, ok := ParseSession(js.Session)
		if !ok {
			c.add(prefix+".session", fmt.Sprintf("unknown session %q", js.Session))
		}

		jobs = append(jobs, Job{
			File:       file,
			Year:       js.Year,
			Difficulty: difficulty,
			Morning:    morning,
		})
	}

	if err := c.result(); err != nil {
		return nil, err
	}
	return jobs, nil
}
