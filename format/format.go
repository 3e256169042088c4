package format

import (
	"encoding"
	"fmt"
	"strconv"

	"github.com/dhamidi/cafebabe/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

// Source identifies where a class file came from. Both fields are optional.
type Source struct {
	Name     string
	Checksum string
}

type constantRow struct {
	Index uint16
	Tag   string
	Refs  string
	Value string
}

func constantRows(cp classfile.ConstantPool) []constantRow {
	var rows []constantRow
	for index, entry := range cp.All() {
		if entry.Tag() == classfile.ConstantEmpty {
			continue
		}
		refs, value := describeConstant(cp, entry)
		rows = append(rows, constantRow{
			Index: index,
			Tag:   entry.Tag().String(),
			Refs:  refs,
			Value: value,
		})
	}
	return rows
}

// describeConstant returns the raw references of an entry and its value
// with references resolved, in the spirit of javap -v.
func describeConstant(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) (refs, value string) {
	switch e := entry.(type) {
	case classfile.ConstantUtf8Info:
		return "", e.Value
	case classfile.ConstantIntegerInfo:
		return "", strconv.FormatInt(int64(e.Value), 10)
	case classfile.ConstantFloatInfo:
		return "", strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "f"
	case classfile.ConstantLongInfo:
		return "", strconv.FormatInt(e.Value, 10) + "l"
	case classfile.ConstantDoubleInfo:
		return "", strconv.FormatFloat(e.Value, 'g', -1, 64) + "d"
	case classfile.ConstantClassInfo:
		return ref(e.NameIndex), resolved(cp.StringEntry(e.NameIndex))
	case classfile.ConstantStringInfo:
		return ref(e.StringIndex), resolved(cp.StringEntry(e.StringIndex))
	case classfile.ConstantFieldrefInfo:
		return ref(e.ClassIndex) + "." + ref(e.NameAndTypeIndex), member(cp, e.ClassIndex, e.NameAndTypeIndex)
	case classfile.ConstantMethodrefInfo:
		return ref(e.ClassIndex) + "." + ref(e.NameAndTypeIndex), member(cp, e.ClassIndex, e.NameAndTypeIndex)
	case classfile.ConstantInterfaceMethodrefInfo:
		return ref(e.ClassIndex) + "." + ref(e.NameAndTypeIndex), member(cp, e.ClassIndex, e.NameAndTypeIndex)
	case classfile.ConstantNameAndTypeInfo:
		return ref(e.NameIndex) + ":" + ref(e.DescriptorIndex), nameAndType(cp, e.NameIndex, e.DescriptorIndex)
	case classfile.ConstantMethodHandleInfo:
		refs = e.ReferenceKind.String() + ":" + ref(e.ReferenceIndex)
		target, err := cp.Entry(e.ReferenceIndex)
		if err != nil {
			return refs, invalid(err)
		}
		switch target.(type) {
		case classfile.ConstantFieldrefInfo, classfile.ConstantMethodrefInfo, classfile.ConstantInterfaceMethodrefInfo:
			_, value = describeConstant(cp, target)
			return refs, value
		}
		return refs, fmt.Sprintf("<method handle to %s>", target.Tag())
	case classfile.ConstantMethodTypeInfo:
		return ref(e.DescriptorIndex), resolved(cp.StringEntry(e.DescriptorIndex))
	case classfile.ConstantDynamicInfo:
		return strconv.Itoa(int(e.BootstrapMethodAttrIndex)) + ":" + ref(e.NameAndTypeIndex), resolvedNameAndType(cp, e.NameAndTypeIndex)
	case classfile.ConstantInvokeDynamicInfo:
		return strconv.Itoa(int(e.BootstrapMethodAttrIndex)) + ":" + ref(e.NameAndTypeIndex), resolvedNameAndType(cp, e.NameAndTypeIndex)
	case classfile.ConstantModuleInfo:
		return ref(e.NameIndex), resolved(cp.StringEntry(e.NameIndex))
	case classfile.ConstantPackageInfo:
		return ref(e.NameIndex), resolved(cp.StringEntry(e.NameIndex))
	}
	return "", ""
}

func ref(index uint16) string {
	return "#" + strconv.Itoa(int(index))
}

func invalid(err error) string {
	return fmt.Sprintf("<%v>", err)
}

func resolved(s string, err error) string {
	if err != nil {
		return invalid(err)
	}
	return s
}

func member(cp classfile.ConstantPool, classIndex, ntIndex uint16) string {
	class, err := cp.ClassName(classIndex)
	if err != nil {
		return invalid(err)
	}
	return class + "." + resolvedNameAndType(cp, ntIndex)
}

func resolvedNameAndType(cp classfile.ConstantPool, ntIndex uint16) string {
	nt, err := cp.NameTypeEntry(ntIndex)
	if err != nil {
		return invalid(err)
	}
	return nameAndType(cp, nt.NameIndex, nt.DescriptorIndex)
}

func nameAndType(cp classfile.ConstantPool, nameIndex, descIndex uint16) string {
	name, err := cp.StringEntry(nameIndex)
	if err != nil {
		return invalid(err)
	}
	desc, err := cp.StringEntry(descIndex)
	if err != nil {
		return invalid(err)
	}
	if name == "<init>" || name == "<clinit>" {
		name = strconv.Quote(name)
	}
	return name + ":" + desc
}

// header collects the resolved class header; resolution failures are
// rendered in place so a damaged pool still prints.
type header struct {
	Name       string
	Super      string
	Interfaces []string
}

func resolveHeader(cf *classfile.ClassFile) header {
	var h header
	h.Name = resolved(cf.ClassName())
	h.Super = resolved(cf.SuperClassName())
	for _, idx := range cf.Class.Interfaces {
		h.Interfaces = append(h.Interfaces, resolved(cf.ConstantPool.ClassName(idx)))
	}
	return h
}
