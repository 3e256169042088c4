package classfile

import (
	"encoding/binary"
	"math"
)

// classBuilder assembles class file bytes for tests. Constant pool entries
// are appended in call order and each helper returns the entry's index.
type classBuilder struct {
	major, minor uint16
	pool         []byte
	count        uint16
	access       uint16
	this, super  uint16
	interfaces   []uint16
	tail         []byte
}

func newClassBuilder(major uint16) *classBuilder {
	return &classBuilder{major: major, count: 1, access: uint16(AccPublic | AccSuper)}
}

func (b *classBuilder) entry(tag ConstantTag, payload ...byte) uint16 {
	b.pool = append(b.pool, byte(tag))
	b.pool = append(b.pool, payload...)
	idx := b.count
	b.count++
	return idx
}

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func (b *classBuilder) utf8(s string) uint16 {
	return b.rawUtf8([]byte(s))
}

func (b *classBuilder) rawUtf8(raw []byte) uint16 {
	payload := append(u2(uint16(len(raw))), raw...)
	return b.entry(ConstantUtf8, payload...)
}

func (b *classBuilder) class(nameIndex uint16) uint16 {
	return b.entry(ConstantClass, u2(nameIndex)...)
}

func (b *classBuilder) methodref(classIndex, nameAndType uint16) uint16 {
	return b.entry(ConstantMethodref, append(u2(classIndex), u2(nameAndType)...)...)
}

func (b *classBuilder) nameAndType(name, descriptor uint16) uint16 {
	return b.entry(ConstantNameAndType, append(u2(name), u2(descriptor)...)...)
}

func (b *classBuilder) long(v int64) uint16 {
	idx := b.entry(ConstantLong, binary.BigEndian.AppendUint64(nil, uint64(v))...)
	b.count++
	return idx
}

func (b *classBuilder) double(v float64) uint16 {
	idx := b.entry(ConstantDouble, binary.BigEndian.AppendUint64(nil, math.Float64bits(v))...)
	b.count++
	return idx
}

func (b *classBuilder) bytes() []byte {
	var out []byte
	out = binary.BigEndian.AppendUint32(out, Magic)
	out = append(out, u2(b.minor)...)
	out = append(out, u2(b.major)...)
	out = append(out, u2(b.count)...)
	out = append(out, b.pool...)
	out = append(out, u2(b.access)...)
	out = append(out, u2(b.this)...)
	out = append(out, u2(b.super)...)
	out = append(out, u2(uint16(len(b.interfaces)))...)
	for _, i := range b.interfaces {
		out = append(out, u2(i)...)
	}
	return append(out, b.tail...)
}

// initMethodTail is what javac emits after the interface table of a class
// with only a default constructor: no fields, the <init> method and a
// SourceFile attribute.
var initMethodTail = []byte{
	0x00, 0x00, // fields_count
	0x00, 0x01, // methods_count
	0x00, 0x01, 0x00, 0x04, 0x00, 0x05, 0x00, 0x01,
	0x00, 0x06, 0x00, 0x00, 0x00, 0x1D, 0x00, 0x01, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x05, 0x2A, 0xB7, 0x00, 0x01, 0xB1,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x07, 0x00, 0x00, 0x00, 0x06,
	0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x00, 0x01, 0x00, 0x08, 0x00, 0x00, 0x00, 0x02, 0x00, 0x09,
}

// emptyClass reproduces javac's output for "public class EmptyClass {}".
func emptyClass(major uint16) []byte {
	b := newClassBuilder(major)
	b.methodref(3, 10)
	b.this = b.class(11)
	b.super = b.class(12)
	b.utf8("<init>")
	b.utf8("()V")
	b.utf8("Code")
	b.utf8("LineNumberTable")
	b.utf8("SourceFile")
	b.utf8("EmptyClass.java")
	b.nameAndType(4, 5)
	b.utf8("EmptyClass")
	b.utf8("java/lang/Object")
	b.tail = initMethodTail
	return b.bytes()
}

// classWithInterfaces builds "public class <name> implements <ifaces...> {}".
func classWithInterfaces(major uint16, name string, ifaces ...string) []byte {
	b := newClassBuilder(major)
	thisName := b.utf8(name)
	superName := b.utf8("java/lang/Object")
	b.this = b.class(thisName)
	b.super = b.class(superName)
	for _, iface := range ifaces {
		b.interfaces = append(b.interfaces, b.class(b.utf8(iface)))
	}
	init := b.utf8("<init>")
	desc := b.utf8("()V")
	b.methodref(b.super, b.nameAndType(init, desc))
	return b.bytes()
}
