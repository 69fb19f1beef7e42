package serializer

import (
	"strconv"
	"strings"

	"github.com/aretw0/functree/pkg/domain"
)

// DefaultSeparator joins the operands of a binary constructor.
const DefaultSeparator = ", "

// Serializer renders trees as nested constructor calls:
//
//	new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Variable("x"))
type Serializer struct {
	namespace string
	separator string
}

// Option defines a functional option for configuring the Serializer.
type Option func(*Serializer)

// WithNamespace replaces the constructor prefix placed before every node name.
func WithNamespace(ns string) Option {
	return func(s *Serializer) {
		s.namespace = ns
	}
}

// WithSeparator replaces the text between the operands of a binary node.
func WithSeparator(sep string) Option {
	return func(s *Serializer) {
		s.separator = sep
	}
}

// New creates a Serializer with the FunctionTree defaults.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		namespace: domain.DefaultNamespace,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize returns the constructor expression for n without a terminator.
func (s *Serializer) Serialize(n *domain.Node) string {
	var sb strings.Builder
	s.write(&sb, n)
	return sb.String()
}

// Statement returns the constructor expression terminated by exactly one ";".
func (s *Serializer) Statement(n *domain.Node) string {
	return s.Serialize(n) + domain.StatementTerminator
}

func (s *Serializer) write(sb *strings.Builder, n *domain.Node) {
	s.open(sb, n)
	switch n.Kind() {
	case domain.KindConst:
		sb.WriteString(strconv.Itoa(n.Value()))
	case domain.KindVariable:
		sb.WriteString(strconv.Quote(n.Name()))
	case domain.KindUnary:
		s.write(sb, n.Child(0))
	case domain.KindBinary:
		s.write(sb, n.Child(0))
		sb.WriteString(s.separator)
		s.write(sb, n.Child(1))
	}
	sb.WriteByte(')')
}

func (s *Serializer) open(sb *strings.Builder, n *domain.Node) {
	sb.WriteString(s.namespace)
	sb.WriteByte('.')
	switch n.Kind() {
	case domain.KindConst:
		sb.WriteString("Const")
	case domain.KindVariable:
		sb.WriteString("Variable")
	default:
		sb.WriteString(n.Name())
	}
	sb.WriteByte('(')
}

// Serialize renders n with the default namespace and separator.
func Serialize(n *domain.Node) string {
	return New().Serialize(n)
}

// Statement renders n with the defaults and appends the terminator.
func Statement(n *domain.Node) string {
	return New().Statement(n)
}
