package models

// Item is the core aggregate for this bounded context.
//
// Fields are unexported so an Item cannot change after construction; an
// "update" is a new Item built with LoadItem. Item values are comparable
// with ==.
type Item struct {
	id             ItemID
	name           ItemName
	description    string
	hasDescription bool
}

// NewItem constructs a valid Item with a freshly generated ID.
// description may be nil.
func NewItem(name string, description *string) (Item, error) {
	return build(NewItemID(), name, description)
}

// LoadItem reconstructs an Item with a caller-supplied ID, e.g. when
// rehydrating from storage. The same name rules apply.
func LoadItem(id ItemID, name string, description *string) (Item, error) {
	return build(id, name, description)
}

func build(id ItemID, name string, description *string) (Item, error) {
	itemName, err := NewItemName(name)
	if err != nil {
		return Item{}, err
	}
	item := Item{id: id, name: itemName}
	if description != nil {
		item.description = *description
		item.hasDescription = true
	}
	return item, nil
}

// ID returns the item's identifier.
func (i Item) ID() ItemID { return i.id }

// Name returns the item's name.
func (i Item) Name() ItemName { return i.name }

// Description returns the description and whether one was set.
func (i Item) Description() (string, bool) {
	return i.description, i.hasDescription
}

// DescriptionPtr returns a copy of the description for serialization, or nil.
func (i Item) DescriptionPtr() *string {
	if !i.hasDescription {
		return nil
	}
	d := i.description
	return &d
}
