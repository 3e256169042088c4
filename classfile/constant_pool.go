package classfile

import (
	"fmt"
	"iter"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

// ConstantStringInfo is a java.lang.String literal; its text lives in the
// Utf8 entry at StringIndex.
type ConstantStringInfo struct {
	StringIndex uint16
}

func (ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantEmptyInfo fills the slot after a Long or Double entry, which the
// format declares unusable.
type ConstantEmptyInfo struct{}

func (ConstantEmptyInfo) Tag() ConstantTag { return ConstantEmpty }

// ConstantPool is the decoded, read-only constant pool of a class file.
// All indices are the 1-based indices used on disk.
type ConstantPool struct {
	entries []ConstantPoolEntry
}

func (cp ConstantPool) Len() int {
	return len(cp.entries)
}

// Entry returns the entry at the 1-based index.
func (cp ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp.entries) {
		return nil, fmt.Errorf("constant pool index %d outside 1..%d: %w", index, len(cp.entries), ErrInvalidConstantPoolIndex)
	}
	return cp.entries[index-1], nil
}

// All yields every entry with its 1-based index, placeholders included.
func (cp ConstantPool) All() iter.Seq2[uint16, ConstantPoolEntry] {
	return func(yield func(uint16, ConstantPoolEntry) bool) {
		for i, entry := range cp.entries {
			if !yield(uint16(i+1), entry) {
				return
			}
		}
	}
}

func entryAs[T ConstantPoolEntry](cp ConstantPool, index uint16, want ConstantTag) (T, error) {
	var zero T
	entry, err := cp.Entry(index)
	if err != nil {
		return zero, err
	}
	typed, ok := entry.(T)
	if !ok {
		return zero, fmt.Errorf("constant pool index %d: expected %s, found %s: %w", index, want, entry.Tag(), ErrUnexpectedConstantPoolType)
	}
	return typed, nil
}

// StringEntry returns the text of the Utf8 entry at index.
func (cp ConstantPool) StringEntry(index uint16) (string, error) {
	entry, err := entryAs[ConstantUtf8Info](cp, index, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// ClassRefEntry returns the name index held by the Class entry at index.
func (cp ConstantPool) ClassRefEntry(index uint16) (uint16, error) {
	entry, err := entryAs[ConstantClassInfo](cp, index, ConstantClass)
	if err != nil {
		return 0, err
	}
	return entry.NameIndex, nil
}

func (cp ConstantPool) NameTypeEntry(index uint16) (ConstantNameAndTypeInfo, error) {
	return entryAs[ConstantNameAndTypeInfo](cp, index, ConstantNameAndType)
}

func (cp ConstantPool) MethodRefEntry(index uint16) (ConstantMethodrefInfo, error) {
	return entryAs[ConstantMethodrefInfo](cp, index, ConstantMethodref)
}

// ClassName resolves the Class entry at index to its binary name,
// e.g. "java/lang/Object".
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	nameIndex, err := cp.ClassRefEntry(index)
	if err != nil {
		return "", err
	}
	return cp.StringEntry(nameIndex)
}

// NameAndType resolves the NameAndType entry at index to its two strings.
func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	nt, err := cp.NameTypeEntry(index)
	if err != nil {
		return "", "", err
	}
	if name, err = cp.StringEntry(nt.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.StringEntry(nt.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}
