package domain

type Tab string

func (t Tab) String() string {
	return string(t)
}

const (
	TabElectronics Tab = "electronics"
	TabBooks       Tab = "books"
	TabClothing    Tab = "clothing"
	TabHome        Tab = "home"
)

// Tabs lists the catalog tabs in display order
var Tabs = []Tab{
	TabElectronics,
	TabBooks,
	TabClothing,
	TabHome,
}

// SubcategoryAll disables subcategory filtering
const SubcategoryAll = "all"

func (t Tab) IsKnown() bool {
	for _, tab := range Tabs {
		if tab == t {
			return true
		}
	}
	return false
}

func (t Tab) GetTabName() string {
	switch t {
	case TabElectronics:
		return "electronics"
	case TabBooks:
		return "books"
	case TabClothing:
		return "clothing"
	case TabHome:
		return "home goods"
	default:
		return "items"
	}
}
