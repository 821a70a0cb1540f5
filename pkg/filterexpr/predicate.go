// Package filterexpr compiles CEL boolean expressions over flat records.
package filterexpr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// ValueKind describes the kind of value a record field holds.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
	KindBool      ValueKind = "bool"
)

// Schema maps field names to their kinds.
type Schema map[string]ValueKind

// Predicate is a compiled boolean expression bound to a schema.
type Predicate struct {
	source string
	schema Schema
	prg    cel.Program
}

// Compile parses and type-checks expr against schema. The expression must
// evaluate to a bool.
func Compile(expr string, schema Schema) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("empty expression")
	}
	if len(schema) == 0 {
		return nil, errors.New("schema has no fields defined")
	}

	env, err := buildEnv(schema)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid expression: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression must be boolean, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return &Predicate{source: expr, schema: schema, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.source }

// Match evaluates the predicate. Fields missing from vars take the zero
// value of their kind.
func (p *Predicate) Match(vars map[string]any) (bool, error) {
	activation := make(map[string]any, len(p.schema))
	for name, kind := range p.schema {
		value, ok := vars[name]
		if !ok || value == nil {
			value = zeroValue(kind)
		}
		activation[name] = normalizeValue(kind, value)
	}

	out, _, err := p.prg.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.source, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q: non-boolean result %v", p.source, out.Value())
	}
	return matched, nil
}

// Fields returns the schema field names in sorted order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildEnv(schema Schema) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(schema)+1)
	for _, name := range schema.Fields() {
		celType, err := celTypeForKind(schema[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	case KindBool:
		return cel.BoolType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

func zeroValue(kind ValueKind) any {
	switch kind {
	case KindString:
		return ""
	case KindNumber:
		return float64(0)
	case KindTimestamp:
		return time.Unix(0, 0).UTC()
	case KindBool:
		return false
	default:
		return nil
	}
}

// normalizeValue widens Go integers to float64 so they bind to double fields.
func normalizeValue(kind ValueKind, value any) any {
	if kind != KindNumber {
		return value
	}
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
