package tools

import (
	"context"
	"fmt"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// ToolContext brings metadata of the call to the tool.
type ToolContext struct {
	UserID    string
	SessionID string
	RequestID string
}

// Tool represents a capability the reasoning engine can invoke.
// input/output is a generic map to maintain flexibility.
type Tool interface {
	Name() string
	Contract() domain.ToolContract
	Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error)
}

// Registry is a closed set of tools keyed by name. Dispatch never
// returns an error: unknown names and tool failures are folded into an
// {"error": ...} payload so the loop can feed them back to the engine.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, dup := r.tools[t.Name()]; dup {
			continue
		}
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return r
}

// Contracts returns the tool contracts in registration order.
func (r *Registry) Contracts() []domain.ToolContract {
	out := make([]domain.ToolContract, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Contract())
	}
	return out
}

// Dispatch runs the named tool synchronously.
func (r *Registry) Dispatch(ctx context.Context, tctx ToolContext, name string, args map[string]any) map[string]any {
	log := observability.LoggerFromContext(ctx).With("tool", name)

	t, ok := r.tools[name]
	if !ok {
		log.Error("unknown tool requested")
		return map[string]any{"error": fmt.Sprintf("unknown tool: %s", name)}
	}

	out, err := t.Call(ctx, tctx, args)
	if err != nil {
		log.Error("tool call failed", "error", err)
		return map[string]any{"error": fmt.Sprintf("error executing %s: %v", name, err)}
	}
	return out
}

// --- shared input helpers --- //

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringSlice(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
