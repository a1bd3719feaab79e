// Package extract captures the attributes of host task objects as JSON-like values.
package extract

import (
	"encoding/json"
	"reflect"

	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
)

var _ ports.PropertyExtractor = (*Extractor)(nil)

// Strategy returns the raw attributes of a task value of one concrete type.
type Strategy func(task any) map[string]any

// Extractor implements ports.PropertyExtractor.
//
// A task value is handled by the first strategy that applies:
//  1. a Strategy registered for its dynamic type,
//  2. the domain.PropertySource capability,
//  3. reflection over its exported fields.
//
// Every attribute is converted to a JSON-like value; attributes that fail
// conversion are left out.
type Extractor struct {
	strategies map[reflect.Type]Strategy
	baseTypes  map[reflect.Type]struct{}
}

// New creates an Extractor that ignores fields promoted from domain.TaskBase
// and domain.Element, plus any additional baseTypes.
func New(baseTypes ...reflect.Type) *Extractor {
	e := &Extractor{
		strategies: make(map[reflect.Type]Strategy),
		baseTypes:  make(map[reflect.Type]struct{}),
	}
	for _, t := range append([]reflect.Type{
		reflect.TypeFor[domain.TaskBase](),
		reflect.TypeFor[domain.Element](),
	}, baseTypes...) {
		e.baseTypes[t] = struct{}{}
	}
	Register(e, func(m domain.PropertyMap) map[string]any { return m })
	return e
}

// Register installs a strategy for task values of type T.
func Register[T any](e *Extractor, fn func(T) map[string]any) {
	e.strategies[reflect.TypeFor[T]()] = func(task any) map[string]any {
		return fn(task.(T))
	}
}

// Extract returns the attributes of task. It never fails; a nil task has no attributes.
func (e *Extractor) Extract(task any) map[string]any {
	props := make(map[string]any)
	if task == nil {
		return props
	}

	var raw map[string]any
	if s, ok := e.strategies[reflect.TypeOf(task)]; ok {
		raw = s(task)
	} else if src, ok := task.(domain.PropertySource); ok {
		raw = src.BuildProperties()
	} else {
		e.collect(reflect.ValueOf(task), props)
		return props
	}

	for name, v := range raw {
		if jv, ok := ToJSONValue(v); ok {
			props[name] = jv
		}
	}
	return props
}

// collect walks v and stores every convertible exported attribute in props.
// Attributes already present are kept, so shallower fields shadow promoted ones.
func (e *Extractor) collect(v reflect.Value, props map[string]any) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		e.collectStruct(v, props)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			e.store(props, iter.Key().String(), iter.Value())
		}
	default:
	}
}

func (e *Extractor) collectStruct(v reflect.Value, props map[string]any) {
	t := v.Type()
	var embedded []reflect.Value

	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous {
			if e.isBase(f.Type) {
				continue
			}
			if indirect(f.Type).Kind() == reflect.Struct {
				embedded = append(embedded, v.Field(i))
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		e.store(props, f.Name, v.Field(i))
	}

	for _, ev := range embedded {
		e.collect(ev, props)
	}
}

func (e *Extractor) store(props map[string]any, name string, fv reflect.Value) {
	if _, exists := props[name]; exists || !fv.CanInterface() {
		return
	}
	if jv, ok := ToJSONValue(fv.Interface()); ok {
		props[name] = jv
	}
}

func (e *Extractor) isBase(t reflect.Type) bool {
	_, ok := e.baseTypes[indirect(t)]
	return ok
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// ToJSONValue converts v to its JSON-like form: string, float64, bool, nil,
// []any or map[string]any. The second result is false when v has no JSON form,
// including when one of its marshalers panics.
func ToJSONValue(v any) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}
