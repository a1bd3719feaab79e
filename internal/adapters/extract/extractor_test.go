package extract_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/buildviz/internal/adapters/extract"
	"go.trai.ch/buildviz/internal/core/domain"
)

type fileRef struct {
	FullPath string
	Exists   bool
}

type copyTask struct {
	domain.TaskBase
	ToFile    fileRef
	Overwrite bool
	Flatten   *bool
	Retries   int
	Filters   []string
	Progress  func(int)   // not convertible
	Done      chan string // not convertible
	Output    *bytes.Buffer
	secret    string
}

type auditing struct {
	Auditor string
	Retries string // shadowed by copyTask-like outer fields
}

type layeredTask struct {
	*domain.TaskBase
	auditing
	Retries int
}

type reportingTask struct {
	domain.TaskBase
	Hidden string
}

func (r reportingTask) BuildProperties() map[string]any {
	return map[string]any{"Reported": r.Hidden, "Bad": make(chan int)}
}

type brokenValue struct{}

func (*brokenValue) MarshalJSON() ([]byte, error) {
	panic("getter failed")
}

type fragileTask struct {
	Good string
	Bad  *brokenValue
}

type customTask struct {
	Level int
}

func TestExtractor_Reflection(t *testing.T) {
	e := extract.New()

	task := &copyTask{
		TaskBase:  domain.TaskBase{Element: domain.Element{Name: "copy", Location: "b.build(3,5)"}, FailOnError: true},
		ToFile:    fileRef{FullPath: "/repo/out/app.dll", Exists: true},
		Overwrite: true,
		Retries:   3,
		Filters:   []string{"*.dll", "*.pdb"},
		Progress:  func(int) {},
		Done:      make(chan string),
		secret:    "hidden",
	}

	got := e.Extract(task)

	assert.Equal(t, map[string]any{
		"ToFile":    map[string]any{"FullPath": "/repo/out/app.dll", "Exists": true},
		"Overwrite": true,
		"Flatten":   nil,
		"Retries":   float64(3),
		"Filters":   []any{"*.dll", "*.pdb"},
		"Output":    nil,
	}, got)
	assert.NotContains(t, got, "Name", "base type fields are not extra properties")
	assert.NotContains(t, got, "FailOnError")
	assert.NotContains(t, got, "Progress", "unconvertible attributes are omitted")
	assert.NotContains(t, got, "Done")
	assert.NotContains(t, got, "secret")
}

func TestExtractor_PromotedFields(t *testing.T) {
	e := extract.New()

	got := e.Extract(layeredTask{
		TaskBase: &domain.TaskBase{FailOnError: true},
		auditing: auditing{Auditor: "ci", Retries: "never"},
		Retries:  2,
	})

	assert.Equal(t, map[string]any{
		"Auditor": "ci",
		"Retries": float64(2),
	}, got)
}

func TestExtractor_Strategies(t *testing.T) {
	e := extract.New()
	extract.Register(e, func(c customTask) map[string]any {
		return map[string]any{"Verbosity": c.Level * 10}
	})

	tests := []struct {
		name string
		task any
		want map[string]any
	}{
		{
			name: "registered strategy",
			task: customTask{Level: 2},
			want: map[string]any{"Verbosity": float64(20)},
		},
		{
			name: "property source",
			task: reportingTask{Hidden: "yes"},
			want: map[string]any{"Reported": "yes"},
		},
		{
			name: "property map passes through",
			task: domain.PropertyMap{"Command": "make all", "Env": map[string]any{"CI": "1"}},
			want: map[string]any{"Command": "make all", "Env": map[string]any{"CI": "1"}},
		},
		{
			name: "plain string map",
			task: map[string]string{"Dir": "/repo"},
			want: map[string]any{"Dir": "/repo"},
		},
		{
			name: "nil task",
			task: nil,
			want: map[string]any{},
		},
		{
			name: "nil pointer",
			task: (*copyTask)(nil),
			want: map[string]any{},
		},
		{
			name: "scalar task",
			task: 42,
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.task))
		})
	}
}

func TestExtractor_AdditionalBaseTypes(t *testing.T) {
	e := extract.New(reflectTypeOfAuditing())

	got := e.Extract(layeredTask{auditing: auditing{Auditor: "ci"}, Retries: 1})

	assert.Equal(t, map[string]any{"Retries": float64(1)}, got)
}

func TestToJSONValue(t *testing.T) {
	v, ok := extract.ToJSONValue(struct{ A []int }{A: []int{1, 2}})
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"A": []any{float64(1), float64(2)}}, v)

	_, ok = extract.ToJSONValue(func() {})
	assert.False(t, ok)

	_, ok = extract.ToJSONValue(&brokenValue{})
	assert.False(t, ok)
}

func TestExtractor_PanickingMarshalerDropsOnlyThatAttribute(t *testing.T) {
	e := extract.New()

	var got map[string]any
	assert.NotPanics(t, func() {
		got = e.Extract(&fragileTask{Good: "ok", Bad: &brokenValue{}})
	})
	assert.Equal(t, map[string]any{"Good": "ok"}, got)
}
