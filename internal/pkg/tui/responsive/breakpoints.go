// Package responsive picks the analytics view layout for a terminal width.
package responsive

const (
	// CompactBelow is the first width that gets full header labels and key hints
	CompactBelow = 80

	// StatBoxesFrom is the first width with room for the summary boxes
	StatBoxesFrom = 120

	// baseChromeRows covers header (2), range (2), toast (1) and footer (1)
	baseChromeRows = 6

	// statBoxRows is the bordered stat box row under the range line
	statBoxRows = 3
)

// WidthClass is the layout bucket a terminal width falls into
type WidthClass int

const (
	Narrow WidthClass = iota
	Medium
	Wide
)

// Classify buckets a terminal width
func Classify(width int) WidthClass {
	switch {
	case width < CompactBelow:
		return Narrow
	case width < StatBoxesFrom:
		return Medium
	default:
		return Wide
	}
}

// Layout is what the analytics view adapts to the terminal width
type Layout struct {
	Class WidthClass

	// CompactLabels abbreviates the header names and key hints
	CompactLabels bool

	// StatBoxes shows the series summary boxes under the range line
	StatBoxes bool

	// ChromeRows is the height taken by everything except the graph
	ChromeRows int
}

// For returns the layout for a terminal width
func For(width int) Layout {
	class := Classify(width)
	l := Layout{
		Class:         class,
		CompactLabels: class == Narrow,
		StatBoxes:     class == Wide,
		ChromeRows:    baseChromeRows,
	}
	if l.StatBoxes {
		l.ChromeRows += statBoxRows
	}
	return l
}
