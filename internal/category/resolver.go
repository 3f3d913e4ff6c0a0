package category

import (
	"context"
	"errors"
	"fmt"

	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownCategory is returned when a selection is not among the options offered at its level
var ErrUnknownCategory = errors.New("category is not an option at this level")

// Fetcher lists the children of a category. An empty id lists the roots.
type Fetcher interface {
	Children(ctx context.Context, categoryID string) ([]domain.Category, error)
}

// Resolver walks the taxonomy one level at a time and keeps the selected path.
// options[n] holds the choices offered at level n.
type Resolver struct {
	fetcher Fetcher
	path    Path
	options [][]domain.Category
}

func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Load fetches the root categories and resets the path
func (r *Resolver) Load(ctx context.Context) error {
	roots, err := r.FetchChildren(ctx, "")
	if err != nil {
		return err
	}

	r.path.TruncateFrom(0)
	r.options = [][]domain.Category{roots}
	log.Infof("📂 Loaded %d root categories", len(roots))
	return nil
}

func (r *Resolver) Loaded() bool {
	return len(r.options) > 0
}

func (r *Resolver) FetchChildren(ctx context.Context, categoryID string) ([]domain.Category, error) {
	children, err := r.fetcher.Children(ctx, categoryID)
	if err != nil {
		if categoryID == "" {
			return nil, fmt.Errorf("failed to fetch root categories: %w", err)
		}
		return nil, fmt.Errorf("failed to fetch children of category %s: %w", categoryID, err)
	}
	return children, nil
}

// Select picks id at level. Children are fetched before anything changes, so a failed
// fetch leaves the path as it was. An empty result means id is a leaf.
func (r *Resolver) Select(ctx context.Context, level int, id string) ([]domain.Category, error) {
	if level < 0 || level >= len(r.options) {
		return nil, fmt.Errorf("level %d has no options loaded", level)
	}

	var chosen *domain.Category
	for i := range r.options[level] {
		if r.options[level][i].ID == id {
			chosen = &r.options[level][i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: %s at level %d", ErrUnknownCategory, id, level)
	}

	children, err := r.FetchChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.path.Set(level, id); err != nil {
		return nil, err
	}
	r.options = append(r.options[:level+1], children)

	if len(children) == 0 {
		log.Infof("🍃 Selected leaf category %s (%s)", chosen.Name, id)
	} else {
		log.Debugf("Selected category %s (%s) with %d children", chosen.Name, id, len(children))
	}
	return children, nil
}

// SelectPath selects ids level by level from the root
func (r *Resolver) SelectPath(ctx context.Context, ids ...string) ([]domain.Category, error) {
	if !r.Loaded() {
		if err := r.Load(ctx); err != nil {
			return nil, err
		}
	}

	var children []domain.Category
	for level, id := range ids {
		var err error
		children, err = r.Select(ctx, level, id)
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

// LeafCategoryID returns the deepest selected category, false when nothing is selected
func (r *Resolver) LeafCategoryID() (string, bool) {
	return r.path.Leaf()
}

// AtLeaf reports whether the deepest selection has no children
func (r *Resolver) AtLeaf() bool {
	return r.path.Len() > 0 && len(r.options) == r.path.Len()+1 && len(r.options[r.path.Len()]) == 0
}

// Options returns the choices at level, nil when the level is not open
func (r *Resolver) Options(level int) []domain.Category {
	if level < 0 || level >= len(r.options) {
		return nil
	}
	return r.options[level]
}

// Depth is the number of open levels
func (r *Resolver) Depth() int {
	return len(r.options)
}

// Selected returns the chosen category at each level of the path
func (r *Resolver) Selected() []domain.Category {
	levels := r.path.Levels()
	selected := make([]domain.Category, 0, len(levels))
	for level, id := range levels {
		for _, option := range r.options[level] {
			if option.ID == id {
				selected = append(selected, option)
				break
			}
		}
	}
	return selected
}
