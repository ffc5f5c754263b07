package items

// AddItem appends a copy of item to a collection
func AddItem(items *[]Item, item Item) {
	*items = append(*items, item)
}

// RemoveItem removes the first item with the given name (case-insensitive).
// Returns the removed item and true if found.
func RemoveItem(items *[]Item, itemName string) (Item, bool) {
	for i, item := range *items {
		if item.Is(itemName) {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return item, true
		}
	}
	return Item{}, false
}

// HasItem checks if an item exists in a collection (case-insensitive)
func HasItem(items []Item, itemName string) bool {
	_, ok := FindItem(items, itemName)
	return ok
}

// HasAll reports whether every named item is present in the collection
func HasAll(items []Item, names []string) bool {
	for _, name := range names {
		if !HasItem(items, name) {
			return false
		}
	}
	return true
}

// FindItem returns the first item whose name matches exactly, ignoring case.
// Partial names never match: "key" does not find "cell key".
func FindItem(items []Item, itemName string) (Item, bool) {
	for _, item := range items {
		if item.Is(itemName) {
			return item, true
		}
	}
	return Item{}, false
}

// BestDamage returns the highest attack rating in the collection, or 0
func BestDamage(items []Item) int {
	best := 0
	for _, item := range items {
		if item.Damage > best {
			best = item.Damage
		}
	}
	return best
}
