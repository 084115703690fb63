// Package validation contains the pure per-phase completion rules for
// specification documents. Validators are pure functions over document
// content; nothing here performs I/O or caches results.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/example/specmentor/internal/models"
)

// Severity classifies how a failed check is reported.
type Severity string

const (
	// SeverityError blocks phase completion.
	SeverityError Severity = "error"
	// SeverityWarning is reported but does not block.
	SeverityWarning Severity = "warning"
)

// Rules describes the static completion rules for one phase.
type Rules struct {
	RequiredSections []string
	// SectionSeverity controls whether a missing section is an error or
	// a warning. The asymmetry across phases is deliberate: REQUIREMENTS
	// and TASKS gate hard on structure, DESIGN and IMPLEMENTATION do not.
	SectionSeverity Severity
	MinWords        int
	Custom          func(content string) CustomResult
}

// CustomResult is the outcome of a phase's format validators.
type CustomResult struct {
	Errors   []string
	Warnings []string
}

// Passed reports whether the custom validators raised no blocking errors.
func (r CustomResult) Passed() bool {
	return len(r.Errors) == 0
}

// phaseRules is the immutable per-phase rule table, constructed once.
var phaseRules = map[models.Phase]Rules{
	models.PhaseRequirements: {
		RequiredSections: []string{"Introduction", "Requirements"},
		SectionSeverity:  SeverityError,
		MinWords:         200,
		Custom:           validateRequirements,
	},
	models.PhaseDesign: {
		RequiredSections: []string{"Overview", "Architecture", "Components", "Data Models"},
		SectionSeverity:  SeverityWarning,
		MinWords:         500,
		Custom:           validateDesign,
	},
	models.PhaseTasks: {
		RequiredSections: []string{"Implementation Plan"},
		SectionSeverity:  SeverityError,
		MinWords:         300,
		Custom:           validateTasks,
	},
	models.PhaseImplementation: {
		RequiredSections: []string{"Implementation Notes"},
		SectionSeverity:  SeverityWarning,
		MinWords:         100,
		Custom:           validateTasks,
	},
}

// RulesFor returns the rule set for a phase.
func RulesFor(p models.Phase) (Rules, bool) {
	r, ok := phaseRules[p]
	return r, ok
}

// AIPhase maps a workflow phase onto the review gateway's phase
// vocabulary. IMPLEMENTATION shares the TASKS validation profile.
func AIPhase(p models.Phase) string {
	if p == models.PhaseImplementation {
		return strings.ToLower(string(models.PhaseTasks))
	}
	return strings.ToLower(string(p))
}

var (
	userStoryRe   = regexp.MustCompile(`(?i)as an?\s+.+?,\s*i want\s+.+?,\s*so that\s+.+`)
	earsRe        = regexp.MustCompile(`(?i)\b(WHEN|IF)\b.+\bTHEN\b.+\bSHALL\b`)
	reqHeadingRe  = regexp.MustCompile(`###\s*Requirement\s+\d+`)
	checkboxRe    = regexp.MustCompile(`-\s*\[[ xX]?\]\s+\S`)
	reqRefRe      = regexp.MustCompile(`_Requirements?:\s*[\d.,\s]+_`)
	nestedTaskRe  = regexp.MustCompile(`(?m)^\s{2,}-\s*\[[ xX]?\]`)
	structuralRe  = regexp.MustCompile("[#*`\\-\\[\\]_>|]")
	archLanguage  = regexp.MustCompile(`(?i)\b(architecture|diagram|mermaid|component)\b`)
	modelLanguage = regexp.MustCompile(`(?i)\b(data model|schema|entity|interface\s+\w+|type\s+\w+)\b`)
	apiLanguage   = regexp.MustCompile(`(?i)\b(api|endpoint|interface|contract)\b`)
)

// WordCount counts whitespace-delimited words after stripping
// structural punctuation such as markdown markers.
func WordCount(content string) int {
	stripped := structuralRe.ReplaceAllString(content, " ")
	return len(strings.Fields(stripped))
}

// validateRequirements checks REQUIREMENTS format conventions.
// A user story is a hard requirement; EARS acceptance criteria and
// numbered requirement headings are recommendations.
func validateRequirements(content string) CustomResult {
	var res CustomResult
	if !userStoryRe.MatchString(content) {
		res.Errors = append(res.Errors,
			"missing user story: include at least one \"As a ..., I want ..., so that ...\" sentence")
	}
	if !earsRe.MatchString(content) {
		res.Warnings = append(res.Warnings,
			"consider EARS-format acceptance criteria (WHEN/IF ... THEN ... SHALL ...)")
	}
	if !reqHeadingRe.MatchString(content) {
		res.Warnings = append(res.Warnings,
			"consider numbered requirement headings (### Requirement 1)")
	}
	return res
}

// validateDesign checks DESIGN format conventions. All soft.
func validateDesign(content string) CustomResult {
	var res CustomResult
	if !archLanguage.MatchString(content) {
		res.Warnings = append(res.Warnings, "consider describing the architecture, ideally with a diagram")
	}
	if !modelLanguage.MatchString(content) {
		res.Warnings = append(res.Warnings, "consider documenting data models")
	}
	if !apiLanguage.MatchString(content) {
		res.Warnings = append(res.Warnings, "consider documenting APIs or interfaces")
	}
	return res
}

// validateTasks checks TASKS format conventions. Checkbox task markers
// are a hard requirement; requirement references and nesting are
// recommendations.
func validateTasks(content string) CustomResult {
	var res CustomResult
	if !checkboxRe.MatchString(content) {
		res.Errors = append(res.Errors,
			"missing task list: use checkbox-style task markers (- [ ] task description)")
	}
	if !reqRefRe.MatchString(content) {
		res.Warnings = append(res.Warnings,
			"consider referencing requirements from tasks (_Requirements: 1.1, 1.2_)")
	}
	if !nestedTaskRe.MatchString(content) {
		res.Warnings = append(res.Warnings, "consider breaking tasks into nested sub-tasks")
	}
	return res
}

// Result is the outcome of the static (non-AI) checks for a document.
type Result struct {
	Errors   []string
	Warnings []string
	// ChecksPassed and ChecksTotal feed the completion percentage:
	// one check per required section, one for word count, one for the
	// custom validators overall.
	ChecksPassed int
	ChecksTotal  int
}

// ValidateDocument runs the phase's static rules against the content.
func ValidateDocument(p models.Phase, content string) Result {
	rules, ok := phaseRules[p]
	if !ok {
		return Result{
			Errors:      []string{fmt.Sprintf("unknown phase %q", string(p))},
			ChecksTotal: 1,
		}
	}

	var res Result
	lower := strings.ToLower(content)

	// Section checks: each missing section is reported individually.
	for _, section := range rules.RequiredSections {
		res.ChecksTotal++
		if strings.Contains(lower, strings.ToLower(section)) {
			res.ChecksPassed++
			continue
		}
		msg := fmt.Sprintf("missing required section: %s", section)
		if rules.SectionSeverity == SeverityError {
			res.Errors = append(res.Errors, msg)
		} else {
			res.Warnings = append(res.Warnings, msg)
		}
	}

	// Length check.
	res.ChecksTotal++
	if words := WordCount(content); words >= rules.MinWords {
		res.ChecksPassed++
	} else {
		res.Errors = append(res.Errors,
			fmt.Sprintf("document too short: %d words, need at least %d", words, rules.MinWords))
	}

	// Custom format validators.
	res.ChecksTotal++
	custom := rules.Custom(content)
	if custom.Passed() {
		res.ChecksPassed++
	}
	res.Errors = append(res.Errors, custom.Errors...)
	res.Warnings = append(res.Warnings, custom.Warnings...)

	return res
}
