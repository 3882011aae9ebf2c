package value

import (
	"fmt"

	"github.com/google/btree"

	"github.com/mcncl/jsondoc/internal/errors"
)

// objectDegree is the branching factor of the member tree.
const objectDegree = 8

type member struct {
	key string
	val *Value
}

func lessMember(a, b member) bool {
	return a.key < b.key
}

// Object maps unique string keys to values. Members are kept sorted by key,
// so iteration is in lexicographic key order and lookups are O(log n).
// The zero Object is empty and ready to use.
type Object struct {
	tree *btree.BTreeG[member]
}

// NewObjectMap returns an empty Object.
func NewObjectMap() *Object {
	return &Object{tree: btree.NewG(objectDegree, lessMember)}
}

func (o *Object) members() *btree.BTreeG[member] {
	if o.tree == nil {
		o.tree = btree.NewG(objectDegree, lessMember)
	}
	return o.tree
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil || o.tree == nil {
		return 0
	}
	return o.tree.Len()
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil || o.tree == nil {
		return nil, false
	}
	m, ok := o.tree.Get(member{key: key})
	if !ok {
		return nil, false
	}
	return m.val, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set moves v under key, replacing any previous value. The caller's v is
// left Empty. Set fails on a nil Object, on an Empty v, and when v contains o.
func (o *Object) Set(key string, v *Value) error {
	if err := o.checkInsert(key, v); err != nil {
		return err
	}
	o.members().ReplaceOrInsert(member{key: key, val: v.Take()})
	return nil
}

// Insert moves v under key only if key is absent. It reports whether v was
// stored; an existing member and the caller's v are then left untouched.
func (o *Object) Insert(key string, v *Value) (bool, error) {
	if err := o.checkInsert(key, v); err != nil {
		return false, err
	}
	t := o.members()
	if t.Has(member{key: key}) {
		return false, nil
	}
	t.ReplaceOrInsert(member{key: key, val: v.Take()})
	return true, nil
}

func (o *Object) checkInsert(key string, v *Value) error {
	if o == nil {
		return errors.NewValueError(fmt.Sprintf("cannot store member %q in a nil object", key), errors.ErrNotAnObject)
	}
	if !v.Exists() {
		return errors.NewValueError(fmt.Sprintf("member %q", key), errors.ErrEmptyValue)
	}
	if reaches(v, nil, o) {
		return errors.NewValueError(fmt.Sprintf("cannot store object inside itself as %q", key), errors.ErrCyclicValue)
	}
	return nil
}

// Delete removes key and returns the value it held.
func (o *Object) Delete(key string) (*Value, bool) {
	if o == nil || o.tree == nil {
		return nil, false
	}
	m, ok := o.tree.Delete(member{key: key})
	if !ok {
		return nil, false
	}
	return m.val, true
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(key string, _ *Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for each member in key order until fn returns false.
func (o *Object) Range(fn func(key string, v *Value) bool) {
	if o == nil || o.tree == nil {
		return
	}
	o.tree.Ascend(func(m member) bool {
		return fn(m.key, m.val)
	})
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	c := NewObjectMap()
	o.Range(func(key string, v *Value) bool {
		c.tree.ReplaceOrInsert(member{key: key, val: v.Clone()})
		return true
	})
	return c
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o.Len() == 0 {
		return true
	}
	a := make([]member, 0, o.Len())
	o.tree.Ascend(func(m member) bool {
		a = append(a, m)
		return true
	})
	i := 0
	eq := true
	other.tree.Ascend(func(m member) bool {
		if a[i].key != m.key || !a[i].val.Equal(m.val) {
			eq = false
			return false
		}
		i++
		return true
	})
	return eq
}
