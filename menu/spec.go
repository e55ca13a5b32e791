package menu

import "slices"

// ItemKind distinguishes entries of a menu tree.
type ItemKind int

const (
	// KindItem is a clickable or disabled text entry.
	KindItem ItemKind = iota
	// KindSeparator is a horizontal divider.
	KindSeparator
	// KindSubmenu is a titled entry holding child items.
	KindSubmenu
)

// String returns a short name for the kind.
func (k ItemKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindSeparator:
		return "separator"
	case KindSubmenu:
		return "submenu"
	default:
		return "unknown"
	}
}

// Item is one entry of a menu tree.
type Item struct {
	Kind     ItemKind
	ID       string
	Title    string
	Tooltip  string
	Disabled bool
	Children []Item
}

// Spec is a complete menu. Surfaces install it as a whole.
type Spec struct {
	Items []Item
}

// Label returns a disabled informational item.
func Label(id, title string) Item {
	return Item{Kind: KindItem, ID: id, Title: title, Disabled: true}
}

// Clickable returns an enabled clickable item.
func Clickable(id, title, tooltip string) Item {
	return Item{Kind: KindItem, ID: id, Title: title, Tooltip: tooltip}
}

// Separator returns a divider.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// Submenu returns a titled item holding children.
func Submenu(id, title string, children ...Item) Item {
	return Item{Kind: KindSubmenu, ID: id, Title: title, Children: children}
}

// Equal reports whether two specs describe the same menu.
func (s Spec) Equal(other Spec) bool {
	return slices.EqualFunc(s.Items, other.Items, Item.equal)
}

func (it Item) equal(other Item) bool {
	return it.Kind == other.Kind &&
		it.ID == other.ID &&
		it.Title == other.Title &&
		it.Tooltip == other.Tooltip &&
		it.Disabled == other.Disabled &&
		slices.EqualFunc(it.Children, other.Children, Item.equal)
}

// Walk calls fn for every item in display order. parent is nil for
// top-level items.
func (s Spec) Walk(fn func(parent *Item, it Item)) {
	for i := range s.Items {
		top := s.Items[i]
		fn(nil, top)
		for _, child := range top.Children {
			fn(&s.Items[i], child)
		}
	}
}

// Find returns the first item with the given id.
func (s Spec) Find(id string) (Item, bool) {
	var (
		found Item
		ok    bool
	)
	s.Walk(func(_ *Item, it Item) {
		if !ok && it.ID == id && it.Kind != KindSeparator {
			found, ok = it, true
		}
	})
	return found, ok
}

// Submenus returns the top-level submenus in order.
func (s Spec) Submenus() []Item {
	var out []Item
	for _, it := range s.Items {
		if it.Kind == KindSubmenu {
			out = append(out, it)
		}
	}
	return out
}
