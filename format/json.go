package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/cafebabe/classfile"
)

type JSONEncoder struct {
	w      io.Writer
	class  *classfile.ClassFile
	Source Source
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.class == nil {
		return nil, fmt.Errorf("no class file to encode")
	}
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClassFile struct {
	Source       string         `json:"source,omitempty"`
	Checksum     string         `json:"checksum,omitempty"`
	Version      jsonVersion    `json:"version"`
	Kind         string         `json:"kind"`
	AccessFlags  jsonFlags      `json:"accessFlags"`
	Name         string         `json:"name"`
	SuperClass   string         `json:"superClass,omitempty"`
	Interfaces   []string       `json:"interfaces,omitempty"`
	ConstantPool []jsonConstant `json:"constantPool"`
}

type jsonVersion struct {
	Major   uint16 `json:"major"`
	Minor   uint16 `json:"minor"`
	Release string `json:"release"`
	Preview bool   `json:"preview,omitempty"`
}

type jsonFlags struct {
	Value uint16   `json:"value"`
	Names []string `json:"names,omitempty"`
}

type jsonConstant struct {
	Index uint16 `json:"index"`
	Tag   string `json:"tag"`
	Refs  string `json:"refs,omitempty"`
	Value string `json:"value"`
}

func (e *JSONEncoder) buildClassData() jsonClassFile {
	cf := e.class
	h := resolveHeader(cf)
	data := jsonClassFile{
		Source:   e.Source.Name,
		Checksum: e.Source.Checksum,
		Version: jsonVersion{
			Major:   cf.Version.Major,
			Minor:   cf.Version.Minor,
			Release: cf.Version.Release(),
			Preview: cf.Version.IsPreview(),
		},
		Kind: cf.Kind(),
		AccessFlags: jsonFlags{
			Value: uint16(cf.AccessFlags),
			Names: cf.AccessFlags.Names(),
		},
		Name:       h.Name,
		Interfaces: h.Interfaces,
	}
	if cf.Class.SuperClass != 0 {
		data.SuperClass = h.Super
	}
	for _, row := range constantRows(cf.ConstantPool) {
		data.ConstantPool = append(data.ConstantPool, jsonConstant(row))
	}
	return data
}
