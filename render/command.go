// Package render is the S52GL command renderer (spec §4.7): it walks each
// feature's symbology command list and dispatches SY/LS/LC/AC/AP/TE/TX/CS/OP
// to specialized renderers, owns the matrix stack, symbol/pattern/text
// caches, and exposes the External Renderer API (spec §6.1).
package render

import "fmt"

// CommandKind tags one symbology command word (spec §9: "Commands are a
// tagged union — Sy | Ls | Lc | Ac | Ap | Te | Tx | Cs | Op").
type CommandKind int

const (
	Sy CommandKind = iota
	Ls
	Lc
	Ac
	Ap
	Te
	Tx
	Cs
	Op
)

func (k CommandKind) String() string {
	return [...]string{"SY", "LS", "LC", "AC", "AP", "TE", "TX", "CS", "OP"}[k]
}

// LineStyle selects the LS pen style (spec §4.7).
type LineStyle int

const (
	LineSolid LineStyle = iota // 'L'
	LineDash                   // 'S', 3.6/1.8mm
	LineDot                    // 'T', 0.6/1.2mm
)

// Command is one parsed symbology command word, as compiled by the
// external Presentation Library (spec §1 external collaborator S52PL).
type Command struct {
	Kind CommandKind

	SymbolName string // SY, AP
	ColorName  string // LS, LC, AC
	PenWidth   int    // LS, LC
	Style      LineStyle

	SymLen float64 // LC: fixed world length of the line-style vector symbol

	Text     string // TE/TX
	TextSize int
	TextX, TextY float64

	// OP: override priority, honored by the scene driver, no-op here.
	Priority int
}

// Dispatch walks cmds for one feature and routes each to its renderer,
// in command-word order (spec §5 ordering guarantee). Per-command errors
// are not fatal to the feature: CS and unresolved cases are logged and
// skipped (spec §4.7 "CS... core logs and skips").
func (r *Renderer) Dispatch(obj *Object, cmds []Command) error {
	if obj.cycle == cyclePick && r.Pick != nil && obj.pickIndex == 0 {
		idx, err := r.Pick.Assign(obj.Feature)
		if err != nil {
			return err
		}
		obj.pickIndex = idx
	}
	r.activeObj = obj
	defer func() { r.activeObj = nil }()
	for _, c := range cmds {
		var err error
		switch c.Kind {
		case Sy:
			err = r.renderSymbol(obj, c)
		case Ls:
			err = r.renderSimpleLine(obj, c)
		case Lc:
			err = r.renderComplexLine(obj, c)
		case Ac:
			err = r.renderAreaColor(obj, c)
		case Ap:
			err = r.renderAreaPattern(obj, c)
		case Te, Tx:
			if obj.cycle == cycleDraw {
				continue // text is deferred to the LAST pass (spec §4.11)
			}
			err = r.renderText(obj, c)
		case Cs:
			r.logSkip(obj.Feature.Name, fmt.Errorf("unresolved CS command"))
			continue
		case Op:
			continue // no-op at render time; honored by the scene driver
		}
		if err != nil {
			r.logSkip(obj.Feature.Name, err)
		}
	}
	return nil
}
