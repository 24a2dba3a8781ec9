// Package model holds the structural entities produced by an extraction run
// and their wire representation.
package model

// MethodCall is a reserved outgoing call edge. The extractor never fills it.
type MethodCall struct {
	TargetClass  string `json:"targetClass"`
	TargetMethod string `json:"targetMethod"`
}

// MethodCaller is a reserved incoming call edge. The extractor never fills it.
type MethodCaller struct {
	CallerClass  string `json:"callerClass"`
	CallerMethod string `json:"callerMethod"`
}

// MethodEntity is a method declared by a class or interface.
type MethodEntity struct {
	Name     string         `json:"name"`
	Summary  *string        `json:"summary"`
	Calls    []MethodCall   `json:"calls,omitempty"`
	CalledBy []MethodCaller `json:"calledBy,omitempty"`
}

// ClassEntity is an extracted class declaration.
type ClassEntity struct {
	Name       string         `json:"name"`
	Namespace  string         `json:"namespace"`
	Summary    *string        `json:"summary"`
	Attributes []string       `json:"attributes"`
	Methods    []MethodEntity `json:"methods"`

	// Dependencies are distinct, non-blank field and constructor parameter
	// types in first-seen order.
	Dependencies []string `json:"dependencies"`

	// Implements is nil or non-empty; never an empty slice.
	Implements []string `json:"implements"`
	Extends    *string  `json:"extends"`
}

// InterfaceEntity is an extracted interface declaration.
type InterfaceEntity struct {
	Name      string         `json:"name"`
	Namespace string         `json:"namespace"`
	Methods   []MethodEntity `json:"methods"`
}

// Model is the result of one extraction run.
type Model struct {
	Classes    []ClassEntity     `json:"classes"`
	Interfaces []InterfaceEntity `json:"interfaces"`
}

// QualifiedName joins a namespace and a name with a dot. The global
// namespace yields the bare name.
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// Stats summarizes a model.
type Stats struct {
	Classes      int `json:"classes"`
	Interfaces   int `json:"interfaces"`
	Methods      int `json:"methods"`
	Dependencies int `json:"dependencies"`
}

// Stats counts the entities in m.
func (m *Model) Stats() Stats {
	s := Stats{Classes: len(m.Classes), Interfaces: len(m.Interfaces)}
	for _, c := range m.Classes {
		s.Methods += len(c.Methods)
		s.Dependencies += len(c.Dependencies)
	}
	for _, i := range m.Interfaces {
		s.Methods += len(i.Methods)
	}
	return s
}
