package canvas

// CharacterMerger decides what ends up in a cell when two lines cross it.
type CharacterMerger struct {
	mergeMap map[mergePair]rune
}

type mergePair struct {
	existing rune
	new      rune
}

// NewCharacterMerger creates a merger with the standard box-drawing rules.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		mergeMap: make(map[mergePair]rune),
	}
	m.initializeMergeRules()
	return m
}

// Merge combines two characters according to box-drawing rules.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' || existing == '\x00' {
		return new
	}
	if existing == new {
		return existing
	}

	// Arrowheads are never overwritten by lines.
	if IsArrow(existing) {
		return existing
	}
	if IsArrow(new) {
		return new
	}

	if merged, ok := m.mergeMap[mergePair{existing, new}]; ok {
		return merged
	}
	if merged, ok := m.mergeMap[mergePair{new, existing}]; ok {
		return merged
	}

	// Later lines win over earlier ones.
	return new
}

// IsArrow checks if a character is an arrowhead.
func IsArrow(r rune) bool {
	switch r {
	case '▶', '◀', '▲', '▼', '>', '<', '^', 'v':
		return true
	}
	return false
}

func (m *CharacterMerger) initializeMergeRules() {
	m.mergeMap[mergePair{'─', '│'}] = '┼'
	m.mergeMap[mergePair{'╲', '╱'}] = '╳'
	m.mergeMap[mergePair{'─', '╲'}] = '┼'
	m.mergeMap[mergePair{'─', '╱'}] = '┼'
	m.mergeMap[mergePair{'│', '╲'}] = '┼'
	m.mergeMap[mergePair{'│', '╱'}] = '┼'

	// Rounded corners joined by a straight line become T-junctions.
	m.mergeMap[mergePair{'╭', '─'}] = '┬'
	m.mergeMap[mergePair{'╭', '│'}] = '├'
	m.mergeMap[mergePair{'╮', '─'}] = '┬'
	m.mergeMap[mergePair{'╮', '│'}] = '┤'
	m.mergeMap[mergePair{'╰', '─'}] = '┴'
	m.mergeMap[mergePair{'╰', '│'}] = '├'
	m.mergeMap[mergePair{'╯', '─'}] = '┴'
	m.mergeMap[mergePair{'╯', '│'}] = '┤'

	// T-junctions absorb the missing arm.
	for _, t := range []rune{'┬', '┴', '├', '┤'} {
		m.mergeMap[mergePair{t, '─'}] = mergeTee(t, '─')
		m.mergeMap[mergePair{t, '│'}] = mergeTee(t, '│')
	}

	// ASCII lines only know a plain crossing.
	m.mergeMap[mergePair{'-', '|'}] = '+'
	m.mergeMap[mergePair{'\\', '/'}] = 'X'
	for _, straight := range []rune{'-', '|'} {
		m.mergeMap[mergePair{'+', straight}] = '+'
		m.mergeMap[mergePair{straight, '\\'}] = '+'
		m.mergeMap[mergePair{straight, '/'}] = '+'
	}
}

func mergeTee(t, line rune) rune {
	switch {
	case line == '─' && (t == '┬' || t == '┴'):
		return t
	case line == '│' && (t == '├' || t == '┤'):
		return t
	default:
		return '┼'
	}
}
