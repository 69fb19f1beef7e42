package domain

// Operator names understood by the FunctionTree constructors.
const (
	OpAdd  = "Add"
	OpDiv  = "Div"
	OpTanh = "Tanh"
)

// Constant bounds used by the built-in presets.
const (
	ConstMin = 1
	ConstMax = 100
)

// DefaultNamespace is the constructor prefix shared by every serialized node.
const DefaultNamespace = "new FunctionTree"

// StatementTerminator ends every emitted expression statement.
const StatementTerminator = ";"

// DefaultVariables returns the variable symbols of the built-in presets.
func DefaultVariables() []string {
	return []string{"x", "y", "z"}
}
