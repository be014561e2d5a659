// Package abi inspects the memory layout of the option and result structs
// mmapvm exposes, so a change that silently grows or reorders one of them
// (and would therefore break any consumer tracking it as a fixed-size,
// C-ABI-shaped record) shows up as a visible diff rather than a surprise.
package abi

import (
	"fmt"
	"reflect"
	"strings"
)

// Field describes one struct field's position and size.
type Field struct {
	Name      string
	Type      string
	Size      uintptr
	Alignment uintptr
	Offset    uintptr
	Padding   uintptr
}

// Layout describes the complete memory layout of a struct value.
type Layout struct {
	Name         string
	Size         uintptr
	Alignment    uintptr
	Fields       []Field
	TotalPadding uintptr
}

// Analyze computes the layout of v's type, dereferencing one level of
// pointer if v is a pointer to struct.
func Analyze(v any) Layout {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return Layout{Name: t.String(), Size: t.Size(), Alignment: uintptr(t.Align())}
	}

	layout := Layout{
		Name:      t.String(),
		Size:      t.Size(),
		Alignment: uintptr(t.Align()),
		Fields:    make([]Field, t.NumField()),
	}

	var prevEnd uintptr
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		padding := f.Offset - prevEnd
		layout.TotalPadding += padding

		layout.Fields[i] = Field{
			Name:      f.Name,
			Type:      f.Type.String(),
			Size:      f.Type.Size(),
			Alignment: uintptr(f.Type.Align()),
			Offset:    f.Offset,
			Padding:   padding,
		}
		prevEnd = f.Offset + f.Type.Size()
	}

	if prevEnd < t.Size() {
		layout.TotalPadding += t.Size() - prevEnd
	}

	return layout
}

// String renders a human-readable layout table, used by mmapvmctl's
// diagnostic output and by layout stability tests.
func (l Layout) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n", l.Name)
	fmt.Fprintf(&b, "size=%d align=%d padding=%d\n", l.Size, l.Alignment, l.TotalPadding)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "  +%-4d %-20s size=%-3d align=%-2d pad=%d\n", f.Offset, f.Name, f.Size, f.Alignment, f.Padding)
	}
	return b.String()
}

// CheckSize reports an error if v's type does not occupy exactly wantSize
// bytes, for pinning down the size of structs that matter to a stable
// on-wire or cross-language contract.
func CheckSize(v any, wantSize uintptr) error {
	l := Analyze(v)
	if l.Size != wantSize {
		return fmt.Errorf("abi: %s is %d bytes, want %d", l.Name, l.Size, wantSize)
	}
	return nil
}
