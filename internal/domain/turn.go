package domain

// Role tags the author of a Turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// TurnKind discriminates the payload carried by a Turn.
type TurnKind string

const (
	TurnText       TurnKind = "text"
	TurnToolCall   TurnKind = "tool_call"
	TurnToolResult TurnKind = "tool_result"
)

// ToolCall is a request from the reasoning engine to run a domain tool.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolResult carries a tool's output back into the conversation. It is
// paired with its ToolCall by ID. Output is never an exception: dispatch
// failures are folded into an {"error": ...} payload.
type ToolResult struct {
	ID     string
	Name   string
	Output map[string]any
}

// Turn is one ordered unit of dialogue state. Exactly one of Text, Call
// or Result is populated, according to Kind. The sequence is append-only
// and owned by the active loop invocation.
type Turn struct {
	Role   Role
	Kind   TurnKind
	Text   string
	Call   *ToolCall
	Result *ToolResult
}

func TextTurn(role Role, text string) Turn {
	return Turn{Role: role, Kind: TurnText, Text: text}
}

func ToolCallTurn(call ToolCall) Turn {
	return Turn{Role: RoleModel, Kind: TurnToolCall, Call: &call}
}

func ToolResultTurn(result ToolResult) Turn {
	return Turn{Role: RoleUser, Kind: TurnToolResult, Result: &result}
}

// Part is one element of a reasoning engine response: either free text
// or a tool invocation request, in the order the engine emitted them.
type Part struct {
	Text string
	Call *ToolCall
}

// ToolContract declares a tool to the reasoning engine: its name,
// description and a JSON-schema-like parameter spec.
type ToolContract struct {
	Name        string
	Description string
	Parameters  *Schema
}

// Schema is a minimal JSON-schema subset, enough to describe tool
// parameters without binding the domain to any SDK's schema type.
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
)
