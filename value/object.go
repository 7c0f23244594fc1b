package value

import (
	"github.com/google/btree"

	"github.com/oarkflow/ijson/span"
)

const objectDegree = 8

type member struct {
	key span.Span
	val *Value
}

func lessMember(a, b member) bool { return a.key.Compare(b.key) < 0 }

// Object maps keys to values. Members are kept ordered by key so iteration
// is deterministic; keys are unique and a later Set for an existing key
// replaces the earlier value.
type Object struct {
	t *btree.BTreeG[member]
}

func NewObject() *Object {
	return &Object{t: btree.NewG[member](objectDegree, lessMember)}
}

func (o *Object) Len() int {
	if o == nil || o.t == nil {
		return 0
	}
	return o.t.Len()
}

func (o *Object) init() {
	if o.t == nil {
		o.t = btree.NewG[member](objectDegree, lessMember)
	}
}

// Slot returns the value stored under key, inserting a null value first if
// the key is absent.
func (o *Object) Slot(key span.Span) *Value {
	o.init()
	if m, ok := o.t.Get(member{key: key}); ok {
		return m.val
	}
	v := new(Value)
	o.t.ReplaceOrInsert(member{key: key, val: v})
	return v
}

// Set stores v under key, replacing any previous value.
func (o *Object) Set(key span.Span, v Value) {
	slot := o.Slot(key)
	slot.clear()
	*slot = v
}

func (o *Object) Get(key span.Span) (*Value, bool) {
	if o.Len() == 0 {
		return nil, false
	}
	m, ok := o.t.Get(member{key: key})
	if !ok {
		return nil, false
	}
	return m.val, true
}

func (o *Object) GetString(key string) (*Value, bool) {
	return o.Get(span.Of(key))
}

func (o *Object) Has(key span.Span) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Delete(key span.Span) bool {
	if o.Len() == 0 {
		return false
	}
	_, ok := o.t.Delete(member{key: key})
	return ok
}

// Ascend calls fn for every member in key order until fn returns false.
func (o *Object) Ascend(fn func(key span.Span, v *Value) bool) {
	if o.Len() == 0 {
		return
	}
	o.t.Ascend(func(m member) bool {
		return fn(m.key, m.val)
	})
}

func (o *Object) Keys() []span.Span {
	keys := make([]span.Span, 0, o.Len())
	o.Ascend(func(key span.Span, _ *Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	c := NewObject()
	o.Ascend(func(key span.Span, v *Value) bool {
		cv := v.Clone()
		c.t.ReplaceOrInsert(member{key: key, val: &cv})
		return true
	})
	return c
}

func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	equal := true
	o.Ascend(func(key span.Span, v *Value) bool {
		ov, ok := other.Get(key)
		if !ok || !v.Equal(ov) {
			equal = false
		}
		return equal
	})
	return equal
}
