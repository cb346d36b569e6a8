package ir

// Operator is a concrete arithmetic operator.  The operator variant encodes
// whether its operands are signed, unsigned, or floating point.
type Operator int

// Enumeration of operators
const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
	OpXor
)

var opMnemonics = [...]string{
	OpAdd:  "add",
	OpSub:  "sub",
	OpMul:  "mul",
	OpSDiv: "sdiv",
	OpUDiv: "udiv",
	OpSRem: "srem",
	OpURem: "urem",
	OpFAdd: "fadd",
	OpFSub: "fsub",
	OpFMul: "fmul",
	OpFDiv: "fdiv",
	OpFRem: "frem",
	OpXor:  "xor",
}

func (op Operator) String() string {
	return opMnemonics[op]
}

// Predicate is a concrete comparison predicate.
type Predicate int

// Enumeration of predicates
const (
	ICmpEQ Predicate = iota
	ICmpNE
	ICmpSGT
	ICmpSGE
	ICmpSLT
	ICmpSLE
	ICmpUGT
	ICmpUGE
	ICmpULT
	ICmpULE
	FCmpOEQ
	FCmpONE
	FCmpOGT
	FCmpOGE
	FCmpOLT
	FCmpOLE
)

var predMnemonics = [...]string{
	ICmpEQ:  "icmp eq",
	ICmpNE:  "icmp ne",
	ICmpSGT: "icmp sgt",
	ICmpSGE: "icmp sge",
	ICmpSLT: "icmp slt",
	ICmpSLE: "icmp sle",
	ICmpUGT: "icmp ugt",
	ICmpUGE: "icmp uge",
	ICmpULT: "icmp ult",
	ICmpULE: "icmp ule",
	FCmpOEQ: "fcmp oeq",
	FCmpONE: "fcmp one",
	FCmpOGT: "fcmp ogt",
	FCmpOGE: "fcmp oge",
	FCmpOLT: "fcmp olt",
	FCmpOLE: "fcmp ole",
}

func (p Predicate) String() string {
	return predMnemonics[p]
}

// IsFloat returns whether the predicate compares floating point operands.
func (p Predicate) IsFloat() bool {
	return p >= FCmpOEQ
}
