package flow

import "fmt"

// LabelKind classifies the jump targets a pass knows about.
type LabelKind int

const (
	CaseLabel LabelKind = iota
	DefaultLabel
	// BreakLabel is the synthetic point immediately after a breakable
	// statement.
	BreakLabel
	ContinueLabel
	UserLabel
)

func (k LabelKind) String() string {
	switch k {
	case CaseLabel:
		return "case"
	case DefaultLabel:
		return "default"
	case BreakLabel:
		return "break"
	case ContinueLabel:
		return "continue"
	case UserLabel:
		return "label"
	default:
		return fmt.Sprintf("LabelKind(%d)", int(k))
	}
}

// Label denotes a jump target. Labels are compared by identity; two labels
// with equal names are still distinct targets.
type Label struct {
	Kind LabelKind
	Name string
}

func NewLabel(kind LabelKind, name string) *Label {
	return &Label{Kind: kind, Name: name}
}

func (l *Label) String() string {
	if l.Name == "" {
		return l.Kind.String()
	}
	return fmt.Sprintf("%v %s", l.Kind, l.Name)
}
