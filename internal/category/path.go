package category

import "fmt"

// Path is the root-to-node walk of selected category ids. Index is the level.
type Path struct {
	ids []string
}

// Set records id at level and drops everything deeper
func (p *Path) Set(level int, id string) error {
	if level < 0 || level > len(p.ids) {
		return fmt.Errorf("level %d is not reachable from a path of depth %d", level, len(p.ids))
	}
	p.TruncateFrom(level)
	p.ids = append(p.ids, id)
	return nil
}

// TruncateFrom removes every entry at index >= level
func (p *Path) TruncateFrom(level int) {
	if level < 0 {
		level = 0
	}
	if level < len(p.ids) {
		p.ids = p.ids[:level]
	}
}

// Leaf returns the deepest selected id
func (p *Path) Leaf() (string, bool) {
	if len(p.ids) == 0 {
		return "", false
	}
	return p.ids[len(p.ids)-1], true
}

func (p *Path) Len() int {
	return len(p.ids)
}

func (p *Path) Levels() []string {
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}
