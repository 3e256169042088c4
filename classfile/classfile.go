package classfile

import (
	"fmt"
	"strings"
)

type ClassFile struct {
	Version      Version
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	Class        ClassDefinition
}

// ClassDefinition holds the constant pool indices naming the class, its
// superclass and its direct superinterfaces. Each index refers to a Class
// entry; SuperClass is 0 for java/lang/Object and module-info.
type ClassDefinition struct {
	ThisClass  uint16
	SuperClass uint16
	Interfaces []uint16
}

func (cf *ClassFile) ClassName() (string, error) {
	name, err := cf.ConstantPool.ClassName(cf.Class.ThisClass)
	if err != nil {
		return "", fmt.Errorf("this class: %w", err)
	}
	return name, nil
}

// SuperClassName returns "" without error when the class has no superclass.
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.Class.SuperClass == 0 {
		return "", nil
	}
	name, err := cf.ConstantPool.ClassName(cf.Class.SuperClass)
	if err != nil {
		return "", fmt.Errorf("super class: %w", err)
	}
	return name, nil
}

// InterfaceNames resolves the interfaces in declaration order.
func (cf *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(cf.Class.Interfaces))
	for i, idx := range cf.Class.Interfaces {
		name, err := cf.ConstantPool.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

// Kind is one of "annotation", "interface", "enum" or "class".
func (cf *ClassFile) Kind() string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsInterface():
		return "interface"
	case cf.IsEnum():
		return "enum"
	default:
		return "class"
	}
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
