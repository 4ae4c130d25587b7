package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
)

// Violation is a single failed constraint, identified by the dotted path of
// the offending key
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks every type and range constraint on the document and, if
// all hold, projects it onto the typed schema. All violations are collected
// and reported in one pass so a single run surfaces every problem.
func Validate(doc *Document) (*ResolvedConfig, error) {
	var violations []Violation
	record := func(path, message string) {
		violations = append(violations, Violation{Path: path, Message: message})
	}

	for _, r := range valueRules {
		v, ok := doc.Lookup(r.path)
		if !ok {
			record(r.path, "required key is missing")
			continue
		}
		if msg := r.check(v); msg != "" {
			record(r.path, msg)
		}
	}

	checkSizeBounds(doc, record)
	checkSolverSteps(doc, record)

	if len(violations) > 0 {
		log.Debug().Int("violations", len(violations)).Msg("Validation failed")
		err := errors.Newf(errors.ErrConfigInvalid, "configuration has %d invalid value(s)", len(violations)).
			WithDetail("violations", violations)
		return nil, err
	}

	return unmarshalResolved(doc)
}

// ViolationsFromError extracts the violation list from a CONFIG_INVALID
// error; nil for any other error
func ViolationsFromError(err error) []Violation {
	details := errors.GetErrorDetails(err)
	if details == nil {
		return nil
	}
	violations, _ := details["violations"].([]Violation)
	return violations
}

type valueRule struct {
	path  string
	check func(v interface{}) string
}

var valueRules = []valueRule{
	{"MODEL.ROI_HEADS.NUM_CLASSES", positiveInt},
	{"MODEL.ROI_HEADS.BATCH_SIZE_PER_IMAGE", positiveInt},
	{"MODEL.ROI_HEADS.SCORE_THRESH_TEST", unitInterval},
	{"MODEL.RESNETS.DEPTH", intOneOf(18, 34, 50, 101, 152)},
	{"MODEL.RESNETS.NUM_GROUPS", positiveInt},
	{"MODEL.RESNETS.WIDTH_PER_GROUP", positiveInt},
	{"MODEL.BACKBONE.FREEZE_AT", intInRange(0, 5)},
	{"MODEL.ANCHOR_GENERATOR.SIZES", nonEmptyList},
	{"MODEL.ANCHOR_GENERATOR.ASPECT_RATIOS", nonEmptyList},
	{"MODEL.PIXEL_MEAN", listOfLength(3)},
	{"MODEL.PIXEL_STD", listOfLength(3)},
	{"INPUT.MIN_SIZE_TRAIN", nonEmptyList},
	{"INPUT.FORMAT", stringOneOf("BGR", "RGB")},
	{"DATASETS.TRAIN", nonEmptyList},
	{"DATASETS.TEST", nonEmptyList},
	{"DATALOADER.NUM_WORKERS", nonNegativeInt},
	{"SOLVER.IMS_PER_BATCH", positiveInt},
	{"SOLVER.BASE_LR", positiveFloat},
	{"SOLVER.GAMMA", gammaInterval},
	{"SOLVER.STEPS", nonDecreasingInts},
	{"SOLVER.MAX_ITER", positiveInt},
	{"SOLVER.WARMUP_ITERS", nonNegativeInt},
	{"SOLVER.CHECKPOINT_PERIOD", positiveInt},
	{"TEST.EVAL_PERIOD", positiveInt},
	{"TEST.DETECTIONS_PER_IMAGE", positiveInt},
}

// checkSizeBounds enforces min <= max on the input size pairs
func checkSizeBounds(doc *Document, record func(path, message string)) {
	if mins, ok := intListAt(doc, "INPUT.MIN_SIZE_TRAIN"); ok && len(mins) > 0 {
		if max, ok := intAt(doc, "INPUT.MAX_SIZE_TRAIN"); ok {
			for _, min := range mins {
				if min > max {
					record("INPUT.MIN_SIZE_TRAIN",
						fmt.Sprintf("size %d exceeds INPUT.MAX_SIZE_TRAIN (%d)", min, max))
					break
				}
			}
		}
	}
	if min, ok := intAt(doc, "INPUT.MIN_SIZE_TEST"); ok {
		if max, ok := intAt(doc, "INPUT.MAX_SIZE_TEST"); ok && min > max {
			record("INPUT.MIN_SIZE_TEST",
				fmt.Sprintf("minimum %d exceeds INPUT.MAX_SIZE_TEST (%d)", min, max))
		}
	}
}

// checkSolverSteps requires every decay milestone to fall before MAX_ITER
func checkSolverSteps(doc *Document, record func(path, message string)) {
	steps, ok := intListAt(doc, "SOLVER.STEPS")
	if !ok {
		return
	}
	maxIter, ok := intAt(doc, "SOLVER.MAX_ITER")
	if !ok || maxIter <= 0 {
		return
	}
	for _, step := range steps {
		if step >= maxIter {
			record("SOLVER.STEPS",
				fmt.Sprintf("milestone %d is not below SOLVER.MAX_ITER (%d)", step, maxIter))
			break
		}
	}
}

func positiveInt(v interface{}) string {
	n, ok := asInt(v)
	if !ok {
		return fmt.Sprintf("expected an integer, got %v", describe(v))
	}
	if n <= 0 {
		return fmt.Sprintf("must be a positive integer, got %d", n)
	}
	return ""
}

func nonNegativeInt(v interface{}) string {
	n, ok := asInt(v)
	if !ok {
		return fmt.Sprintf("expected an integer, got %v", describe(v))
	}
	if n < 0 {
		return fmt.Sprintf("must not be negative, got %d", n)
	}
	return ""
}

func positiveFloat(v interface{}) string {
	f, ok := asFloat(v)
	if !ok {
		return fmt.Sprintf("expected a number, got %v", describe(v))
	}
	if f <= 0 {
		return fmt.Sprintf("must be a positive number, got %v", f)
	}
	return ""
}

func unitInterval(v interface{}) string {
	f, ok := asFloat(v)
	if !ok {
		return fmt.Sprintf("expected a number, got %v", describe(v))
	}
	if f < 0 || f > 1 {
		return fmt.Sprintf("must be within [0, 1], got %v", f)
	}
	return ""
}

func gammaInterval(v interface{}) string {
	f, ok := asFloat(v)
	if !ok {
		return fmt.Sprintf("expected a number, got %v", describe(v))
	}
	if f <= 0 || f > 1 {
		return fmt.Sprintf("must be within (0, 1], got %v", f)
	}
	return ""
}

func nonEmptyList(v interface{}) string {
	list, ok := asList(v)
	if !ok {
		return fmt.Sprintf("expected a list, got %v", describe(v))
	}
	if len(list) == 0 {
		return "must not be empty"
	}
	return ""
}

func listOfLength(n int) func(v interface{}) string {
	return func(v interface{}) string {
		list, ok := asList(v)
		if !ok {
			return fmt.Sprintf("expected a list, got %v", describe(v))
		}
		if len(list) != n {
			return fmt.Sprintf("must have exactly %d elements, got %d", n, len(list))
		}
		return ""
	}
}

func nonDecreasingInts(v interface{}) string {
	list, ok := asList(v)
	if !ok {
		return fmt.Sprintf("expected a list, got %v", describe(v))
	}
	prev := int64(0)
	for i, item := range list {
		n, ok := asInt(item)
		if !ok {
			return fmt.Sprintf("element %d is not an integer", i)
		}
		if i > 0 && n < prev {
			return fmt.Sprintf("milestones must be non-decreasing, %d follows %d", n, prev)
		}
		prev = n
	}
	return ""
}

func intOneOf(allowed ...int64) func(v interface{}) string {
	return func(v interface{}) string {
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected an integer, got %v", describe(v))
		}
		for _, a := range allowed {
			if n == a {
				return ""
			}
		}
		parts := make([]string, len(allowed))
		for i, a := range allowed {
			parts[i] = strconv.FormatInt(a, 10)
		}
		return fmt.Sprintf("must be one of %s, got %d", strings.Join(parts, ", "), n)
	}
}

func intInRange(lo, hi int64) func(v interface{}) string {
	return func(v interface{}) string {
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected an integer, got %v", describe(v))
		}
		if n < lo || n > hi {
			return fmt.Sprintf("must be within [%d, %d], got %d", lo, hi, n)
		}
		return ""
	}
}

func stringOneOf(allowed ...string) func(v interface{}) string {
	return func(v interface{}) string {
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("expected a string, got %v", describe(v))
		}
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), s)
	}
}

// asInt coerces the value types the YAML/TOML parsers and env overlays
// produce into an integer
func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asList(v interface{}) ([]interface{}, bool) {
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func intAt(doc *Document, path string) (int64, bool) {
	v, ok := doc.Lookup(path)
	if !ok {
		return 0, false
	}
	return asInt(v)
}

func intListAt(doc *Document, path string) ([]int64, bool) {
	v, ok := doc.Lookup(path)
	if !ok {
		return nil, false
	}
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		n, ok := asInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func describe(v interface{}) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T(%v)", v, v)
}
