package classfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func samplePool() ConstantPool {
	return ConstantPool{entries: []ConstantPoolEntry{
		ConstantMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		ConstantClassInfo{NameIndex: 6},
		ConstantUtf8Info{Value: "<init>"},
		ConstantUtf8Info{Value: "()V"},
		ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4},
		ConstantUtf8Info{Value: "java/lang/Object"},
		ConstantLongInfo{Value: 7},
		ConstantEmptyInfo{},
		ConstantClassInfo{NameIndex: 1},
	}}
}

func TestConstantPoolTypedAccessors(t *testing.T) {
	cp := samplePool()

	if s, err := cp.StringEntry(3); err != nil || s != "<init>" {
		t.Errorf("StringEntry(3) = %q, %v", s, err)
	}
	if idx, err := cp.ClassRefEntry(2); err != nil || idx != 6 {
		t.Errorf("ClassRefEntry(2) = %d, %v", idx, err)
	}
	if nt, err := cp.NameTypeEntry(5); err != nil || nt != (ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4}) {
		t.Errorf("NameTypeEntry(5) = %+v, %v", nt, err)
	}
	if m, err := cp.MethodRefEntry(1); err != nil || m.ClassIndex != 2 {
		t.Errorf("MethodRefEntry(1) = %+v, %v", m, err)
	}
	if name, err := cp.ClassName(2); err != nil || name != "java/lang/Object" {
		t.Errorf("ClassName(2) = %q, %v", name, err)
	}
	name, desc, err := cp.NameAndType(5)
	if err != nil || name != "<init>" || desc != "()V" {
		t.Errorf("NameAndType(5) = %q, %q, %v", name, desc, err)
	}
}

func TestConstantPoolTypeMismatch(t *testing.T) {
	cp := samplePool()
	accessors := map[string]func(uint16) error{
		"StringEntry": func(i uint16) error {
			_, err := cp.StringEntry(i)
			return err
		},
		"ClassRefEntry": func(i uint16) error {
			_, err := cp.ClassRefEntry(i)
			return err
		},
		"NameTypeEntry": func(i uint16) error {
			_, err := cp.NameTypeEntry(i)
			return err
		},
		"MethodRefEntry": func(i uint16) error {
			_, err := cp.MethodRefEntry(i)
			return err
		},
	}
	matching := map[string]ConstantTag{
		"StringEntry":    ConstantUtf8,
		"ClassRefEntry":  ConstantClass,
		"NameTypeEntry":  ConstantNameAndType,
		"MethodRefEntry": ConstantMethodref,
	}

	for name, access := range accessors {
		t.Run(name, func(t *testing.T) {
			for index, entry := range cp.All() {
				err := access(index)
				if entry.Tag() == matching[name] {
					if err != nil {
						t.Errorf("%s(%d) error = %v", name, index, err)
					}
					continue
				}
				if !errors.Is(err, ErrUnexpectedConstantPoolType) {
					t.Errorf("%s(%d) on %s error = %v, want ErrUnexpectedConstantPoolType", name, index, entry.Tag(), err)
				}
			}
		})
	}
}

func TestConstantPoolIndexBounds(t *testing.T) {
	cp := samplePool()
	for _, index := range []uint16{0, uint16(cp.Len() + 1), 0xFFFF} {
		if _, err := cp.Entry(index); !errors.Is(err, ErrInvalidConstantPoolIndex) {
			t.Errorf("Entry(%d) error = %v, want ErrInvalidConstantPoolIndex", index, err)
		}
		if _, err := cp.StringEntry(index); !errors.Is(err, ErrInvalidConstantPoolIndex) {
			t.Errorf("StringEntry(%d) error = %v, want ErrInvalidConstantPoolIndex", index, err)
		}
	}
	if _, err := cp.Entry(uint16(cp.Len())); err != nil {
		t.Errorf("Entry(Len()) error = %v", err)
	}

	var empty ConstantPool
	if _, err := empty.Entry(1); !errors.Is(err, ErrInvalidConstantPoolIndex) {
		t.Errorf("empty pool Entry(1) error = %v", err)
	}
}

func TestConstantPoolAll(t *testing.T) {
	cp := samplePool()
	var indices []uint16
	for index := range cp.All() {
		indices = append(indices, index)
		if index == 4 {
			break
		}
	}
	if diff := cmp.Diff([]uint16{1, 2, 3, 4}, indices); diff != "" {
		t.Errorf("All() indices mismatch (-want +got):\n%s", diff)
	}
}

func TestConstantTagString(t *testing.T) {
	if got := ConstantNameAndType.String(); got != "NameAndType" {
		t.Errorf("String() = %q", got)
	}
	if got := ConstantTag(2).String(); got != "Tag(2)" {
		t.Errorf("String() = %q", got)
	}
}

func TestAccessFlags(t *testing.T) {
	flags := AccPublic | AccSuper
	if !flags.Valid() {
		t.Errorf("%v should be valid", flags)
	}
	if diff := cmp.Diff([]string{"public", "super"}, flags.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := flags.String(); got != "0x0021 (public super)" {
		t.Errorf("String() = %q", got)
	}
	for _, bad := range []AccessFlags{0x0002, 0x0008, 0x8000, 0x0800} {
		if (flags | bad).Valid() {
			t.Errorf("%#04x should be rejected", uint16(flags|bad))
		}
	}
}
