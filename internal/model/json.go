package model

import (
	"encoding/json"
	"strings"
)

// Wire aliases drop the MarshalJSON methods so normalize can delegate to the
// default encoder without recursing.
type (
	wireClass     ClassEntity
	wireInterface InterfaceEntity
	wireModel     Model
)

// MarshalJSON emits "[]" for empty lists, "null" for absent optional values
// and never an empty "implements" list.
func (c ClassEntity) MarshalJSON() ([]byte, error) {
	w := wireClass(c)
	w.Attributes = nonNil(w.Attributes)
	w.Methods = normalizeMethods(w.Methods)
	w.Dependencies = nonBlank(w.Dependencies)
	if len(w.Implements) == 0 {
		w.Implements = nil
	}
	return json.Marshal(w)
}

// MarshalJSON emits "[]" for an interface without methods.
func (i InterfaceEntity) MarshalJSON() ([]byte, error) {
	w := wireInterface(i)
	w.Methods = normalizeMethods(w.Methods)
	return json.Marshal(w)
}

// MarshalJSON emits "[]" for empty entity collections.
func (m Model) MarshalJSON() ([]byte, error) {
	w := wireModel(m)
	if w.Classes == nil {
		w.Classes = []ClassEntity{}
	}
	if w.Interfaces == nil {
		w.Interfaces = []InterfaceEntity{}
	}
	return json.Marshal(w)
}

func normalizeMethods(ms []MethodEntity) []MethodEntity {
	if ms == nil {
		return []MethodEntity{}
	}
	return ms
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func nonBlank(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
