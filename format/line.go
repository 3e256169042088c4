package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cafebabe/classfile"
)

// LineEncoder writes one tab-separated record per line:
//
//	source	<name>	<checksum>
//	version	<major>.<minor>	<release>
//	<kind>	<name>	<flags>
//	super	<name>
//	interface	<name>
//	constant	#<index>	<tag>	<refs>	<value>
type LineEncoder struct {
	w      io.Writer
	class  *classfile.ClassFile
	Source Source
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	if e.class == nil {
		return nil, fmt.Errorf("no class file to encode")
	}
	var sb strings.Builder
	cf := e.class
	h := resolveHeader(cf)

	if e.Source.Name != "" || e.Source.Checksum != "" {
		fmt.Fprintf(&sb, "source\t%s\t%s\n", orDash(e.Source.Name), orDash(e.Source.Checksum))
	}
	release := cf.Version.Release()
	if cf.Version.IsPreview() {
		release += " (preview)"
	}
	fmt.Fprintf(&sb, "version\t%s\t%s\n", cf.Version, release)
	fmt.Fprintf(&sb, "%s\t%s\t%s\n", cf.Kind(), h.Name, orDash(strings.Join(cf.AccessFlags.Names(), ",")))
	if cf.Class.SuperClass != 0 {
		fmt.Fprintf(&sb, "super\t%s\n", h.Super)
	}
	for _, iface := range h.Interfaces {
		fmt.Fprintf(&sb, "interface\t%s\n", iface)
	}
	for _, row := range constantRows(cf.ConstantPool) {
		fmt.Fprintf(&sb, "constant\t#%d\t%s\t%s\t%s\n", row.Index, row.Tag, orDash(row.Refs), escape(row.Value))
	}

	return []byte(sb.String()), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var lineEscaper = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")

// escape keeps Utf8 values that contain separators on a single record.
func escape(s string) string {
	return lineEscaper.Replace(s)
}
