package sdl

import (
	"strings"
)

const indentUnit = "  "

// Render produces SDL or document text from the given definitions, in order.
// Definitions are separated by a blank line and the output has no trailing newline.
func Render(defs ...Definition) string {
	w := &writer{}
	first := true
	for _, def := range defs {
		if def == nil {
			continue
		}
		if !first {
			w.WriteString("\n\n")
		}
		first = false
		def.render(w)
	}
	return w.String()
}

type writer struct {
	strings.Builder
	depth int
}

func (w *writer) indent() {
	for range w.depth {
		w.WriteString(indentUnit)
	}
}

func (w *writer) open() {
	w.WriteString(" {\n")
	w.depth++
}

func (w *writer) close() {
	w.depth--
	w.indent()
	w.WriteString("}")
}

func (o *Object) render(w *writer) {
	w.WriteString("type ")
	w.WriteString(o.Name)
	w.open()
	for _, field := range o.Fields {
		w.indent()
		w.fieldDefinition(field, true)
		w.WriteString("\n")
	}
	w.close()
}

func (in *Input) render(w *writer) {
	w.WriteString("input ")
	w.WriteString(in.Name)
	w.open()
	for _, field := range in.Fields {
		w.indent()
		w.fieldDefinition(field, false)
		w.WriteString("\n")
	}
	w.close()
}

func (e *Enum) render(w *writer) {
	w.WriteString("enum ")
	w.WriteString(e.Name)
	w.open()
	for _, value := range e.Values {
		w.indent()
		w.WriteString(value)
		w.WriteString("\n")
	}
	w.close()
}

func (s *Scalar) render(w *writer) {
	w.WriteString("scalar ")
	w.WriteString(s.Name)
}

func (f *Fragment) render(w *writer) {
	w.WriteString("fragment ")
	w.WriteString(f.Name)
	w.WriteString(" on ")
	w.WriteString(f.On)
	w.selectionSet(f.Selections)
}

func (op *Operation) render(w *writer) {
	w.WriteString(string(op.Kind))
	w.WriteString(" ")
	w.WriteString(op.Name)
	if len(op.Variables) > 0 {
		w.WriteString("(")
		for i, v := range op.Variables {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString("$")
			w.WriteString(v.Name)
			w.WriteString(": ")
			w.WriteString(v.Type.String())
		}
		w.WriteString(")")
	}
	w.selectionSet(op.Selections)
}

func (f *Field) renderSelection(w *writer) {
	w.indent()
	w.WriteString(f.Name)
	if len(f.Arguments) > 0 {
		w.WriteString("(")
		for i, arg := range f.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(arg.Name)
			w.WriteString(": $")
			w.WriteString(arg.Variable)
		}
		w.WriteString(")")
	}
	if len(f.Selections) > 0 {
		w.selectionSet(f.Selections)
	}
	w.WriteString("\n")
}

func (s *Spread) renderSelection(w *writer) {
	w.indent()
	w.WriteString("...")
	w.WriteString(s.Name)
	w.WriteString("\n")
}

func (w *writer) selectionSet(selections []Selection) {
	w.open()
	for _, sel := range selections {
		sel.renderSelection(w)
	}
	w.close()
}

func (w *writer) fieldDefinition(field *FieldDefinition, withArgs bool) {
	w.WriteString(field.Name)
	if withArgs && len(field.Arguments) > 0 {
		w.WriteString("(")
		for i, arg := range field.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(arg.Name)
			w.WriteString(": ")
			w.WriteString(arg.Type.String())
		}
		w.WriteString(")")
	}
	w.WriteString(": ")
	w.WriteString(field.Type.String())
}
