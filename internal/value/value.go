// Package value implements the JSON document model: a tree of Value nodes,
// each holding exactly one of null, bool, int64, float64, string, array or
// object, plus the Empty state for values that do not exist.
//
// A Value owns its children. Values added to arrays or objects are adopted,
// not copied; use Clone to keep an independent copy. A tree has no internal
// locking and must not be mutated from more than one goroutine.
package value

import (
	"fmt"
	"slices"

	"github.com/mcncl/jsondoc/internal/errors"
)

// Value is a single JSON node. The zero Value is Empty.
type Value struct {
	kind Kind

	// Only the field matching kind is meaningful.
	b   bool
	i   int64
	f   float64
	s   string
	arr []*Value
	obj *Object
}

// New returns an Empty value.
func New() *Value {
	return &Value{}
}

// Null returns a JSON null.
func Null() *Value {
	return &Value{kind: KindNull}
}

// NewBool returns a bool value.
func NewBool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// NewInt returns an integer value.
func NewInt(i int64) *Value {
	return &Value{kind: KindInt, i: i}
}

// NewFloat returns a floating point value.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// NewArray returns an array that takes over the payload of each item, leaving
// the caller's handles Empty. Nil and Empty items are skipped, so an item
// passed twice is stored once.
func NewArray(items ...*Value) *Value {
	arr := make([]*Value, 0, len(items))
	for _, item := range items {
		if item.Exists() {
			arr = append(arr, item.Take())
		}
	}
	return &Value{kind: KindArray, arr: arr}
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{kind: KindObject, obj: NewObjectMap()}
}

// reset drops the current payload.
func (v *Value) reset() {
	*v = Value{}
}

// Kind returns the active kind. A nil Value is Empty.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindEmpty
	}
	return v.kind
}

// Exists reports whether v holds anything, including null.
func (v *Value) Exists() bool { return v.Kind() != KindEmpty }

// IsNull reports whether v is the JSON null literal.
func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// IsBool reports whether v holds a bool.
func (v *Value) IsBool() bool { return v.Kind() == KindBool }

// IsInt reports whether v holds an int64.
func (v *Value) IsInt() bool { return v.Kind() == KindInt }

// IsFloat reports whether v holds a float64.
func (v *Value) IsFloat() bool { return v.Kind() == KindFloat }

// IsString reports whether v holds a string.
func (v *Value) IsString() bool { return v.Kind() == KindString }

// IsArray reports whether v is an array.
func (v *Value) IsArray() bool { return v.Kind() == KindArray }

// IsObject reports whether v is an object.
func (v *Value) IsObject() bool { return v.Kind() == KindObject }

// IsNumber reports whether v is an Int or a Float.
func (v *Value) IsNumber() bool {
	k := v.Kind()
	return k == KindInt || k == KindFloat
}

// IsEmpty reports whether v is Empty or a container without elements.
// Scalars, including null, are never empty.
func (v *Value) IsEmpty() bool {
	switch v.Kind() {
	case KindEmpty:
		return true
	case KindArray:
		return len(v.arr) == 0
	case KindObject:
		return v.obj.Len() == 0
	default:
		return false
	}
}

func (v *Value) mismatch(want Kind) error {
	return errors.NewValueError(fmt.Sprintf("cannot read %s as %s", v.Kind(), want), errors.ErrTypeMismatch)
}

// AsBool returns the bool payload.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// AsInt returns the integer payload. Floats are not narrowed.
func (v *Value) AsInt() (int64, error) {
	if v.Kind() != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// AsFloat returns the numeric payload as float64, widening Int values.
func (v *Value) AsFloat() (float64, error) {
	switch v.Kind() {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	default:
		return 0, v.mismatch(KindFloat)
	}
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// AsArray returns the elements of an array. The slice is the value's own
// storage and must not be modified; use AddValue and RemoveIndex instead.
func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.arr, nil
}

// AsObject returns the members of an object.
func (v *Value) AsObject() (*Object, error) {
	if v.Kind() != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.obj, nil
}

// BoolOr returns def when v is Empty and AsBool otherwise.
func (v *Value) BoolOr(def bool) (bool, error) {
	if !v.Exists() {
		return def, nil
	}
	return v.AsBool()
}

// IntOr returns def when v is Empty and AsInt otherwise.
func (v *Value) IntOr(def int64) (int64, error) {
	if !v.Exists() {
		return def, nil
	}
	return v.AsInt()
}

// FloatOr returns def when v is Empty and AsFloat otherwise.
func (v *Value) FloatOr(def float64) (float64, error) {
	if !v.Exists() {
		return def, nil
	}
	return v.AsFloat()
}

// StringOr returns def when v is Empty and AsString otherwise.
func (v *Value) StringOr(def string) (string, error) {
	if !v.Exists() {
		return def, nil
	}
	return v.AsString()
}

// Size returns the number of array elements.
func (v *Value) Size() (int, error) {
	if v.Kind() != KindArray {
		return 0, errors.NewValueError(fmt.Sprintf("size of %s", v.Kind()), errors.ErrNotAnArray)
	}
	return len(v.arr), nil
}

// Index returns the i-th array element.
func (v *Value) Index(i int) (*Value, error) {
	if v.Kind() != KindArray {
		return nil, errors.NewValueError(fmt.Sprintf("cannot index %s", v.Kind()), errors.ErrNotAnArray)
	}
	if i < 0 || i >= len(v.arr) {
		return nil, errors.NewValueError(fmt.Sprintf("index %d out of range [0,%d)", i, len(v.arr)), errors.ErrIndexOutOfRange)
	}
	return v.arr[i], nil
}

// Member returns the value stored under key. A missing key, or an Empty
// receiver, yields a fresh Empty value rather than an error, so lookups can
// be chained. Writes through such a value fail with ErrModifyOnEmptyValue.
func (v *Value) Member(key string) (*Value, error) {
	switch v.Kind() {
	case KindEmpty:
		return New(), nil
	case KindObject:
		if m, ok := v.obj.Get(key); ok {
			return m, nil
		}
		return New(), nil
	default:
		return nil, errors.NewValueError(fmt.Sprintf("cannot look up %q in %s", key, v.Kind()), errors.ErrNotAnObject)
	}
}

// Path follows keys through nested objects with Member semantics.
func (v *Value) Path(keys ...string) (*Value, error) {
	cur := v
	if cur == nil {
		cur = New()
	}
	for _, key := range keys {
		next, err := cur.Member(key)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (v *Value) checkExists() error {
	if !v.Exists() {
		return errors.NewValueError("value does not exist", errors.ErrModifyOnEmptyValue)
	}
	return nil
}

// AddMember moves item under key, replacing any previous member. The
// caller's item is left Empty.
func (v *Value) AddMember(key string, item *Value) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	if v.kind != KindObject {
		return errors.NewValueError(fmt.Sprintf("cannot add member %q to %s", key, v.kind), errors.ErrNotAnObject)
	}
	if item == v {
		return errors.NewValueError(fmt.Sprintf("cannot add object to itself as %q", key), errors.ErrCyclicValue)
	}
	return v.obj.Set(key, item)
}

// RemoveMember deletes key and reports whether it was present.
func (v *Value) RemoveMember(key string) (bool, error) {
	if err := v.checkExists(); err != nil {
		return false, err
	}
	if v.kind != KindObject {
		return false, errors.NewValueError(fmt.Sprintf("cannot remove member %q from %s", key, v.kind), errors.ErrNotAnObject)
	}
	_, ok := v.obj.Delete(key)
	return ok, nil
}

// AddValue moves item to the end of an array. The caller's item is left
// Empty.
func (v *Value) AddValue(item *Value) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	if v.kind != KindArray {
		return errors.NewValueError(fmt.Sprintf("cannot append to %s", v.kind), errors.ErrNotAnArray)
	}
	if !item.Exists() {
		return errors.NewValueError("array element", errors.ErrEmptyValue)
	}
	if reaches(item, v, nil) {
		return errors.NewValueError("cannot add array to itself", errors.ErrCyclicValue)
	}
	v.arr = append(v.arr, item.Take())
	return nil
}

// RemoveIndex deletes the i-th array element and returns it.
func (v *Value) RemoveIndex(i int) (*Value, error) {
	item, err := v.Index(i)
	if err != nil {
		if !v.Exists() {
			return nil, v.checkExists()
		}
		return nil, err
	}
	v.arr = slices.Delete(v.arr, i, i+1)
	return item, nil
}

// SetNull replaces the payload with null.
func (v *Value) SetNull() error {
	if err := v.checkExists(); err != nil {
		return err
	}
	v.reset()
	v.kind = KindNull
	return nil
}

// SetBool replaces the payload with b.
func (v *Value) SetBool(b bool) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	v.reset()
	v.kind, v.b = KindBool, b
	return nil
}

// SetInt replaces the payload with i.
func (v *Value) SetInt(i int64) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	v.reset()
	v.kind, v.i = KindInt, i
	return nil
}

// SetFloat replaces the payload with f.
func (v *Value) SetFloat(f float64) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	v.reset()
	v.kind, v.f = KindFloat, f
	return nil
}

// SetString replaces the payload with s.
func (v *Value) SetString(s string) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	v.reset()
	v.kind, v.s = KindString, s
	return nil
}

// SetArray replaces the payload with an array built by NewArray from items.
func (v *Value) SetArray(items []*Value) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	for _, item := range items {
		if reaches(item, v, nil) {
			return errors.NewValueError("cannot store array inside itself", errors.ErrCyclicValue)
		}
	}
	*v = *NewArray(items...)
	return nil
}

// SetObject replaces the payload with a deep copy of obj. A nil obj yields
// an empty object.
func (v *Value) SetObject(obj *Object) error {
	if err := v.checkExists(); err != nil {
		return err
	}
	c := NewObjectMap()
	if obj != nil {
		c = obj.Clone()
	}
	v.reset()
	v.kind, v.obj = KindObject, c
	return nil
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return New()
	}
	c := *v
	switch v.kind {
	case KindArray:
		c.arr = make([]*Value, len(v.arr))
		for i, item := range v.arr {
			c.arr[i] = item.Clone()
		}
	case KindObject:
		c.obj = v.obj.Clone()
	}
	return &c
}

// Take moves the payload of v into a new Value and leaves v Empty. Taking a
// value out of a container leaves an Empty in its slot, which writers reject
// with ErrEmptyValue; use RemoveIndex or RemoveMember to detach it instead.
func (v *Value) Take() *Value {
	if v == nil {
		return New()
	}
	moved := *v
	v.reset()
	return &moved
}

// CopyFrom replaces v with a deep copy of src. Unlike the typed setters it
// may be called on an Empty value.
func (v *Value) CopyFrom(src *Value) {
	if v == src {
		return
	}
	*v = *src.Clone()
}

// MoveFrom transfers the payload of src to v and leaves src Empty. It fails
// when v lies inside src, since v would then contain itself.
func (v *Value) MoveFrom(src *Value) error {
	if v == src {
		return nil
	}
	if reaches(src, v, nil) {
		return errors.NewValueError("cannot move a value into its own descendant", errors.ErrCyclicValue)
	}
	*v = *src.Take()
	return nil
}

// reaches reports whether node, or a value holding obj, is root or one of
// its descendants.
func reaches(root, node *Value, obj *Object) bool {
	if root == nil {
		return false
	}
	if root == node {
		return true
	}
	switch root.kind {
	case KindArray:
		for _, item := range root.arr {
			if reaches(item, node, obj) {
				return true
			}
		}
	case KindObject:
		if obj != nil && root.obj == obj {
			return true
		}
		found := false
		root.obj.Range(func(_ string, item *Value) bool {
			found = reaches(item, node, obj)
			return !found
		})
		return found
	}
	return false
}

// Equal reports whether v and other are structurally equal. Int and Float
// values never compare equal to each other.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindEmpty, KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(other.obj)
	}
	return false
}
