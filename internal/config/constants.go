package config

const SourceFileExt = ".rill"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".rill", ".rl"}

// MaxEvalDepth is the default maximum nesting depth of Eval calls.
// Prevents Go stack overflow from runaway recursion in user programs.
const MaxEvalDepth = 10000

// MaxParseDepth bounds expression nesting in the parser.
const MaxParseDepth = 500

// ProjectConfigFile is the per-project configuration file name.
const ProjectConfigFile = ".rill.yaml"

// HistoryFile is the default REPL history file, relative to the home dir.
const HistoryFile = ".rill_history"

// Built-in function names
const (
	PrintFuncName    = "print"
	PutsFuncName     = "puts"
	ToSFuncName      = "to_s"
	TypeFuncName     = "type"
	AssertFuncName   = "assert"
	AssertEqFuncName = "assert_eq"
)

// Canonical type names for the kernel scope
const (
	IntegerTypeName = "Integer"
	FloatTypeName   = "Float"
	BooleanTypeName = "Boolean"
	NilTypeName     = "Nil"
	StringTypeName  = "String"
	SymbolTypeName  = "Symbol"
	ListTypeName    = "List"
	MapTypeName     = "Map"
	TypeTypeName    = "Type"
)
