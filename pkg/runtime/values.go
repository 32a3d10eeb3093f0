package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"quill/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNil
	KindList
	KindMap
	KindSet
	KindRange
	KindFunction
	KindNativeFunction
	KindModule
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindNil:
		return "Nil"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindRange:
		return "Range"
	case KindFunction:
		return "Function"
	case KindNativeFunction:
		return "NativeFunction"
	case KindModule:
		return "Module"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NilValue is the unit value: the result of statements without one, and of
// functions that fall through without an explicit return.
type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (*ListValue) Kind() Kind { return KindList }

// MapValue preserves insertion order so iteration and stringification stay
// deterministic.
type MapValue struct {
	keys    []string
	entries map[string]mapEntry
}

type mapEntry struct {
	key   Value
	value Value
}

func (*MapValue) Kind() Kind { return KindMap }

func NewMapValue() *MapValue {
	return &MapValue{entries: make(map[string]mapEntry)}
}

// MapKey converts a value into a key usable in maps and sets. Only scalar
// values are hashable.
func MapKey(val Value) (string, bool) {
	switch v := val.(type) {
	case StringValue:
		return "s:" + v.Val, true
	case NumberValue:
		return "n:" + strconv.FormatFloat(v.Val, 'g', -1, 64), true
	case BoolValue:
		return "b:" + strconv.FormatBool(v.Val), true
	case NilValue:
		return "nil", true
	default:
		return "", false
	}
}

func (m *MapValue) Set(key, value Value) bool {
	hash, ok := MapKey(key)
	if !ok {
		return false
	}
	if _, exists := m.entries[hash]; !exists {
		m.keys = append(m.keys, hash)
	}
	m.entries[hash] = mapEntry{key: key, value: value}
	return true
}

func (m *MapValue) Get(key Value) (Value, bool) {
	hash, ok := MapKey(key)
	if !ok {
		return nil, false
	}
	entry, ok := m.entries[hash]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

func (m *MapValue) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *MapValue) Len() int { return len(m.keys) }

// Entries returns [key, value] pairs in insertion order.
func (m *MapValue) Entries() [][2]Value {
	out := make([][2]Value, 0, len(m.keys))
	for _, hash := range m.keys {
		entry := m.entries[hash]
		out = append(out, [2]Value{entry.key, entry.value})
	}
	return out
}

// SetValue keeps insertion order for the same reason MapValue does.
type SetValue struct {
	keys    []string
	entries map[string]Value
}

func (*SetValue) Kind() Kind { return KindSet }

func NewSetValue() *SetValue {
	return &SetValue{entries: make(map[string]Value)}
}

func (s *SetValue) Add(val Value) bool {
	hash, ok := MapKey(val)
	if !ok {
		return false
	}
	if _, exists := s.entries[hash]; !exists {
		s.keys = append(s.keys, hash)
		s.entries[hash] = val
	}
	return true
}

func (s *SetValue) Has(val Value) bool {
	hash, ok := MapKey(val)
	if !ok {
		return false
	}
	_, exists := s.entries[hash]
	return exists
}

func (s *SetValue) Len() int { return len(s.keys) }

func (s *SetValue) Elements() []Value {
	out := make([]Value, 0, len(s.keys))
	for _, hash := range s.keys {
		out = append(out, s.entries[hash])
	}
	return out
}

type RangeValue struct {
	Start     float64
	End       float64
	Inclusive bool
}

func (*RangeValue) Kind() Kind { return KindRange }

//-----------------------------------------------------------------------------
// Callables and modules
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Name    string
	Params  []*ast.Identifier
	Body    *ast.BlockExpression
	Closure *Environment
}

func (*FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext gives host functions access to the calling environment.
type NativeCallContext struct {
	Env *Environment
}

type NativeFunctionValue struct {
	Name  string
	Arity int // negative means variadic
	Impl  func(ctx *NativeCallContext, args []Value) (Value, error)
}

func (NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// ModuleValue is the opaque handle bound at import time. Member access
// resolves through Members, never through the environment chain.
type ModuleValue struct {
	Name    string
	Members map[string]Value
}

func (*ModuleValue) Kind() Kind { return KindModule }

func (m *ModuleValue) Member(name string) (Value, bool) {
	val, ok := m.Members[name]
	return val, ok
}

// MemberNames returns the exported names in sorted order.
func (m *ModuleValue) MemberNames() []string {
	names := make([]string, 0, len(m.Members))
	for name := range m.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//-----------------------------------------------------------------------------
// Stringification and equality
//-----------------------------------------------------------------------------

// ToString renders a value the way the REPL and error messages show it.
func ToString(val Value) string {
	switch v := val.(type) {
	case StringValue:
		return v.Val
	case NumberValue:
		return FormatNumber(v.Val)
	case BoolValue:
		return strconv.FormatBool(v.Val)
	case NilValue:
		return "nil"
	case *ListValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, inspect(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MapValue:
		parts := make([]string, 0, v.Len())
		for _, entry := range v.Entries() {
			parts = append(parts, inspect(entry[0])+": "+inspect(entry[1]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *SetValue:
		parts := make([]string, 0, v.Len())
		for _, el := range v.Elements() {
			parts = append(parts, inspect(el))
		}
		return "#{" + strings.Join(parts, ", ") + "}"
	case *RangeValue:
		op := ".."
		if v.Inclusive {
			op = "..."
		}
		return FormatNumber(v.Start) + op + FormatNumber(v.End)
	case *FunctionValue:
		if v.Name == "" {
			return "<lambda>"
		}
		return "<function " + v.Name + ">"
	case NativeFunctionValue:
		return "<native " + v.Name + ">"
	case *ModuleValue:
		return "<module " + v.Name + ">"
	case *Error:
		return v.Error()
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// inspect is ToString except strings render quoted, for use inside
// collection literals.
func inspect(val Value) string {
	if s, ok := val.(StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return ToString(val)
}

// FormatNumber renders whole numbers without a fractional part.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal is structural equality across the closed value set. Functions,
// modules and errors compare by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, entry := range av.Entries() {
			other, found := bv.Get(entry[0])
			if !found || !Equal(entry[1], other) {
				return false
			}
		}
		return true
	case *SetValue:
		bv, ok := b.(*SetValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, el := range av.Elements() {
			if !bv.Has(el) {
				return false
			}
		}
		return true
	case *RangeValue:
		bv, ok := b.(*RangeValue)
		return ok && av.Start == bv.Start && av.End == bv.End && av.Inclusive == bv.Inclusive
	default:
		return a == b
	}
}

// Truthy defines the language's truthiness rules: false and nil are falsy,
// numbers are falsy at zero, text and collections are falsy when empty, and
// everything else is truthy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	case NumberValue:
		return v.Val != 0
	case StringValue:
		return v.Val != ""
	case *ListValue:
		return len(v.Elements) > 0
	case *MapValue:
		return v.Len() > 0
	case *SetValue:
		return v.Len() > 0
	default:
		return true
	}
}

// TypeName is the name TypeTag patterns and catch clauses match against.
func TypeName(val Value) string {
	if err, ok := val.(*Error); ok {
		return string(err.ErrKind)
	}
	return val.Kind().String()
}
