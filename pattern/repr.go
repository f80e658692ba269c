package pattern

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/bind"
	"github.com/kazcw/comacro/config"
	"github.com/kazcw/comacro/trace"
)

// DebugFlat renders the compiled pattern's trace in a flat, bracketed
// textual form — literal bytes as hex, subtree boundaries as `[`/`]`,
// wildcards as `$k` — one of the supplemented debug representations
// spec.md §6 leaves "cosmetic and outside the core contract" but the
// original Rust implementation exposed as `debug_flat_repr`
// (matchcode.rs). Backed directly by trace.Trace.GoString.
func DebugFlat(p Pattern) string {
	return p.trace.GoString()
}

// DebugTree renders the same trace as a nested JSON array: each subtree
// becomes a JSON array of its children, literal byte runs become hex
// strings, and wildcards become "$k" — the structural analogue of
// matchcode.rs's `stmts_tree_repr`/`expr_tree_repr`.
//
// The original Rust rendering printed named node kinds (`"Stmt<Let>"`)
// by consulting a host-specific name table (crate::names) while
// re-walking the *source* AST. comacro's host contract carries no such
// naming capability — spec.md §1 puts "output formatting" out of scope,
// and inventing a generic discriminant-naming interface just for debug
// output isn't grounded in anything the trace format itself needs — so
// this decodes the trace's own shape instead (see DESIGN.md).
func DebugTree(p Pattern) string {
	return DebugTreeWithConfig(p, config.DefaultConfig())
}

// DebugTreeWithConfig is DebugTree with an explicit recursion bound
// (cfg.MaxRecursionDepth), for callers rendering patterns of unknown
// provenance where a pathologically deep trace should fail loudly
// instead of recursing without limit.
func DebugTreeWithConfig(p Pattern, cfg config.Config) string {
	tree, _ := decodeTree(p.trace.Bytes(), 0, 0, cfg.MaxRecursionDepth)
	out, err := json.Marshal(tree)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// decodeTree decodes one subtree's children starting at i (just past its
// opening META OPEN, or at position 0 for a bare top-level sequence),
// returning a slice of JSON-marshalable values and the offset just past
// the subtree's closing META CLOSE (or len(buf) at top level). depth is
// the current subtree nesting level; decodeTree panics if it would
// exceed maxDepth.
func decodeTree(buf []byte, i, depth, maxDepth int) ([]any, int) {
	var out []any
	var literal []byte
	flush := func() {
		if len(literal) > 0 {
			out = append(out, hexString(literal))
			literal = nil
		}
	}
	for i < len(buf) {
		if buf[i] != trace.Meta {
			literal = append(literal, buf[i])
			i++
			continue
		}
		switch buf[i+1] {
		case trace.Meta:
			literal = append(literal, trace.Meta)
			i += 2
		case trace.Open:
			flush()
			if depth+1 > maxDepth {
				panic("pattern: DebugTree recursion limit exceeded")
			}
			child, next := decodeTree(buf, i+2, depth+1, maxDepth)
			out = append(out, child)
			i = next
		case trace.Close:
			flush()
			return out, i + 2
		default:
			flush()
			out = append(out, "$"+strconv.Itoa(int(buf[i+1])))
			i += 2
		}
	}
	flush()
	return out, i
}

func hexString(b []byte) string {
	const hex = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hex[c>>4]
		out[i*2+1] = hex[c&0xf]
	}
	return string(out)
}

// PlainRepr renders a single host AST node as a best-effort plain-text
// value for use in a binding's serialized form: an identifier's own
// name, or "<expr>" for an expression (comacro has no generic
// expression pretty-printer — spec.md §1 puts the host parser/printer
// out of scope, and matchcode.rs's `PlainAstRepr` leaned on syn's own
// `ToTokens`, which has no Go analogue here). Callers with a concrete
// host type should render ast.Expr values themselves via a type
// assertion on the Binding and pass the result to SerializeBindings.
func PlainRepr(x any) string {
	switch v := x.(type) {
	case ast.Ident:
		return v.Name()
	default:
		return "<expr>"
	}
}

// SerializeBindings renders bindings as spec.md §6's flat bindings
// format: a JSON array of ["Ident", name] / ["Expr", value] pairs, one
// per wildcard index in order. renderExpr supplies the textual form of
// an Expr binding (e.g. a caller-specific pretty-printer); pass nil to
// fall back to PlainRepr's "<expr>" placeholder.
func SerializeBindings(bindings bind.Bindings, renderExpr func(ast.Expr) string) string {
	var b strings.Builder
	// quote writes s as a JSON string without HTML-escaping '<', '>', '&'.
	quote := func(s string) {
		var tmp strings.Builder
		enc := json.NewEncoder(&tmp)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(s)
		b.WriteString(strings.TrimSuffix(tmp.String(), "\n"))
	}
	b.WriteByte('[')
	for i, bd := range bindings {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		if bd == nil {
			b.WriteString(`null,null`)
			b.WriteByte(']')
			continue
		}
		switch bd.Kind {
		case bind.BoundIdent:
			b.WriteString(`"Ident",`)
			quote(bd.Ident.Name())
		case bind.BoundExpr:
			b.WriteString(`"Expr",`)
			value := PlainRepr(bd.Expr)
			if renderExpr != nil {
				value = renderExpr(bd.Expr)
			}
			quote(value)
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
