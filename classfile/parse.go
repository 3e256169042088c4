package classfile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tliron/commonlog"
)

const (
	constantPoolCountOffset = 8
	constantPoolOffset      = 10
)

type Option func(*decoder)

// WithLogger routes decode diagnostics to l instead of the
// "cafebabe.classfile" logger.
func WithLogger(l commonlog.Logger) Option {
	return func(d *decoder) {
		d.log = l
	}
}

type decoder struct {
	data []byte
	log  commonlog.Logger
}

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return ParseReader(f, opts...)
}

func ParseReader(rd io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data, opts...)
}

// Parse decodes the header of a class file: version, constant pool, access
// flags, this/super class and interfaces. Bytes after the interface table
// are not examined. data is only read during the call.
func Parse(data []byte, opts ...Option) (*ClassFile, error) {
	d := &decoder{data: data}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = commonlog.GetLogger("cafebabe.classfile")
	}

	if err := d.readMagic(); err != nil {
		return nil, err
	}
	version, err := d.readVersion()
	if err != nil {
		return nil, err
	}
	pool, offset, err := d.readConstantPool()
	if err != nil {
		return nil, err
	}
	flags, offset, err := d.readAccessFlags(offset)
	if err != nil {
		return nil, err
	}
	class, offset, err := d.readClassDefinition(offset, pool)
	if err != nil {
		return nil, err
	}
	d.log.Debugf("class header decoded: %d of %d bytes", offset, len(data))

	return &ClassFile{
		Version:      version,
		ConstantPool: pool,
		AccessFlags:  flags,
		Class:        class,
	}, nil
}

func (d *decoder) readMagic() error {
	if err := need(d.data, 0, 4, "magic"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMagicNumber, err)
	}
	if magic := readU4(d.data, 0); magic != Magic {
		return decodeErrorf(0, ErrInvalidMagicNumber, "0x%08X (expected 0xCAFEBABE)", magic)
	}
	return nil
}

func (d *decoder) readConstantPool() (ConstantPool, int, error) {
	if err := need(d.data, constantPoolCountOffset, 2, "constant pool count"); err != nil {
		return ConstantPool{}, 0, err
	}
	count := int(readU2(d.data, constantPoolCountOffset))
	d.log.Debugf("start reading constant pool; expected_size=%d", count)

	// Slot 0 is reserved and never stored.
	entries := make([]ConstantPoolEntry, 0, max(count-1, 0))
	offset := constantPoolOffset
	for index := 1; index < count; index++ {
		entry, next, err := d.readConstantPoolEntry(offset, index)
		if err != nil {
			return ConstantPool{}, 0, err
		}
		entries = append(entries, entry)
		offset = next

		if tag := entry.Tag(); tag == ConstantLong || tag == ConstantDouble {
			if index+1 >= count {
				return ConstantPool{}, 0, decodeErrorf(offset, ErrInvalidConstantPoolContent, "%s at index %d occupies two slots but the pool ends", tag, index)
			}
			index++
			entries = append(entries, ConstantEmptyInfo{})
		}
	}

	return ConstantPool{entries: entries}, offset, nil
}

func (d *decoder) readConstantPoolEntry(offset, index int) (ConstantPoolEntry, int, error) {
	data := d.data
	if err := need(data, offset, 1, "constant pool tag"); err != nil {
		return nil, 0, err
	}
	tag := ConstantTag(readU1(data, offset))
	start := offset
	offset++

	size, ok := constantPayloadSize[tag]
	if !ok {
		d.log.Debugf("unknown constant pool entry; tag=%d index=%d", tag, index)
		return nil, 0, decodeErrorf(start, ErrUnknownConstantPoolEntryTag, "tag %d at index %d", tag, index)
	}
	if err := need(data, offset, size, tag.String()+" entry"); err != nil {
		return nil, 0, err
	}

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := int(readU2(data, offset))
		offset += 2
		if err := need(data, offset, length, "Utf8 bytes"); err != nil {
			return nil, 0, err
		}
		value, ok := decodeModifiedUtf8(data[offset : offset+length])
		if !ok {
			return nil, 0, decodeErrorf(offset, ErrInvalidConstantPoolContent, "malformed Utf8 at index %d", index)
		}
		d.log.Debugf("found string; index=%d value=%s", index, value)
		return ConstantUtf8Info{Value: value}, offset + length, nil

	case ConstantInteger:
		entry = ConstantIntegerInfo{Value: int32(readU4(data, offset))}

	case ConstantFloat:
		entry = ConstantFloatInfo{Value: math.Float32frombits(readU4(data, offset))}

	case ConstantLong:
		bits := uint64(readU4(data, offset))<<32 | uint64(readU4(data, offset+4))
		entry = ConstantLongInfo{Value: int64(bits)}

	case ConstantDouble:
		bits := uint64(readU4(data, offset))<<32 | uint64(readU4(data, offset+4))
		entry = ConstantDoubleInfo{Value: math.Float64frombits(bits)}

	case ConstantClass:
		entry = ConstantClassInfo{NameIndex: readU2(data, offset)}

	case ConstantString:
		entry = ConstantStringInfo{StringIndex: readU2(data, offset)}

	case ConstantFieldref:
		entry = ConstantFieldrefInfo{
			ClassIndex:       readU2(data, offset),
			NameAndTypeIndex: readU2(data, offset+2),
		}

	case ConstantMethodref:
		entry = ConstantMethodrefInfo{
			ClassIndex:       readU2(data, offset),
			NameAndTypeIndex: readU2(data, offset+2),
		}

	case ConstantInterfaceMethodref:
		entry = ConstantInterfaceMethodrefInfo{
			ClassIndex:       readU2(data, offset),
			NameAndTypeIndex: readU2(data, offset+2),
		}

	case ConstantNameAndType:
		entry = ConstantNameAndTypeInfo{
			NameIndex:       readU2(data, offset),
			DescriptorIndex: readU2(data, offset+2),
		}

	case ConstantMethodHandle:
		kind := MethodHandleKind(readU1(data, offset))
		if !kind.Valid() {
			return nil, 0, decodeErrorf(offset, ErrInvalidConstantPoolContent, "method handle kind %d at index %d", kind, index)
		}
		entry = ConstantMethodHandleInfo{
			ReferenceKind:  kind,
			ReferenceIndex: readU2(data, offset+1),
		}

	case ConstantMethodType:
		entry = ConstantMethodTypeInfo{DescriptorIndex: readU2(data, offset)}

	case ConstantDynamic:
		entry = ConstantDynamicInfo{
			BootstrapMethodAttrIndex: readU2(data, offset),
			NameAndTypeIndex:         readU2(data, offset+2),
		}

	case ConstantInvokeDynamic:
		entry = ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: readU2(data, offset),
			NameAndTypeIndex:         readU2(data, offset+2),
		}

	case ConstantModule:
		entry = ConstantModuleInfo{NameIndex: readU2(data, offset)}

	case ConstantPackage:
		entry = ConstantPackageInfo{NameIndex: readU2(data, offset)}
	}

	d.log.Debugf("found %s; index=%d entry=%+v", tag, index, entry)
	return entry, offset + size, nil
}

// constantPayloadSize is the fixed payload length after the tag byte. For
// Utf8 it covers only the length prefix.
var constantPayloadSize = map[ConstantTag]int{
	ConstantUtf8:               2,
	ConstantInteger:            4,
	ConstantFloat:              4,
	ConstantLong:               8,
	ConstantDouble:             8,
	ConstantClass:              2,
	ConstantString:             2,
	ConstantFieldref:           4,
	ConstantMethodref:          4,
	ConstantInterfaceMethodref: 4,
	ConstantNameAndType:        4,
	ConstantMethodHandle:       3,
	ConstantMethodType:         2,
	ConstantDynamic:            4,
	ConstantInvokeDynamic:      4,
	ConstantModule:             2,
	ConstantPackage:            2,
}

func (d *decoder) readAccessFlags(offset int) (AccessFlags, int, error) {
	if err := need(d.data, offset, 2, "access flags"); err != nil {
		return 0, 0, err
	}
	flags := AccessFlags(readU2(d.data, offset))
	if !flags.Valid() {
		return 0, 0, decodeErrorf(offset, ErrInvalidAccessFlags, "0x%04X has unknown bits 0x%04X", uint16(flags), uint16(flags&^ClassAccessFlagsMask))
	}
	d.log.Debugf("access flags: %s", flags)
	return flags, offset + 2, nil
}

func (d *decoder) readClassDefinition(offset int, pool ConstantPool) (ClassDefinition, int, error) {
	if err := need(d.data, offset, 6, "class header"); err != nil {
		return ClassDefinition{}, 0, err
	}
	class := ClassDefinition{
		ThisClass:  readU2(d.data, offset),
		SuperClass: readU2(d.data, offset+2),
	}
	count := int(readU2(d.data, offset+4))
	offset += 6

	if err := need(d.data, offset, 2*count, "interfaces"); err != nil {
		return ClassDefinition{}, 0, err
	}
	class.Interfaces = make([]uint16, count)
	for i := range count {
		index := readU2(d.data, offset)
		if _, err := pool.ClassRefEntry(index); err != nil {
			return ClassDefinition{}, 0, &DecodeError{Offset: offset, Err: fmt.Errorf("interface %d: %w", i, err)}
		}
		class.Interfaces[i] = index
		offset += 2
	}
	d.log.Debugf("class header: this=%d super=%d interfaces=%v", class.ThisClass, class.SuperClass, class.Interfaces)

	return class, offset, nil
}
