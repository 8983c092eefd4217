// Package instancing tracks per-entity slots in a mesh's instance buffer.
package instancing

import "fmt"

// AttributeType is the type of one per-instance vertex attribute.
type AttributeType uint8

const (
	Int AttributeType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
)

var attributeWidths = [...]int{
	Int:    1,
	Float:  1,
	Float2: 2,
	Float3: 3,
	Float4: 4,
	Mat3:   9,
	Mat4:   16,
}

var attributeNames = [...]string{
	Int:    "Int",
	Float:  "Float",
	Float2: "Float2",
	Float3: "Float3",
	Float4: "Float4",
	Mat3:   "Mat3",
	Mat4:   "Mat4",
}

// Width returns the size of the attribute in 4-byte words.
func (t AttributeType) Width() int {
	if int(t) < len(attributeWidths) {
		return attributeWidths[t]
	}
	return 0
}

// String returns the string representation of the type.
func (t AttributeType) String() string {
	if int(t) < len(attributeNames) {
		return attributeNames[t]
	}
	return fmt.Sprintf("AttributeType(%d)", uint8(t))
}

// Attribute names one field of the instance payload.
type Attribute struct {
	Name string
	Type AttributeType
}

// Layout is the ordered list of attributes making up one instance.
type Layout []Attribute

// Stride returns the size of one instance in 4-byte words.
func (l Layout) Stride() int {
	n := 0
	for _, a := range l {
		n += a.Type.Width()
	}
	return n
}
