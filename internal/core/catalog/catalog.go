// Package catalog provides the cuisine-to-dish lookup used to build
// closed-world dish constraints for users who picked cuisines but did not
// list their own dishes.
package catalog

import "strings"

// DishLists groups a cuisine's dishes by the meal slots they fit.
type DishLists struct {
	Breakfast   []string
	LunchDinner []string
	Snacks      []string
}

// Catalog is a pure lookup from cuisine names to dish lists. The data is
// static; user-specific dish preferences always take priority over it.
type Catalog struct {
	cuisines map[string]DishLists
}

// New returns the built-in catalog.
func New() *Catalog {
	return &Catalog{cuisines: builtinCuisines}
}

// normalizeName canonicalizes a cuisine name for lookup.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	return strings.Join(strings.Fields(name), " ")
}

// Lookup returns the dish lists for a cuisine. Matching is case and
// separator insensitive ("North-Indian" matches "north indian").
func (c *Catalog) Lookup(name string) (DishLists, bool) {
	lists, ok := c.cuisines[normalizeName(name)]
	return lists, ok
}

// Union returns the order-preserving, de-duplicated union of all dishes
// for the given cuisines: per cuisine breakfast, then lunch/dinner, then
// snacks. Unknown cuisines contribute nothing.
func (c *Catalog) Union(names []string) []string {
	seen := make(map[string]struct{})
	union := make([]string, 0)

	appendDishes := func(dishes []string) {
		for _, d := range dishes {
			if _, ok := seen[d]; ok {
				continue
			}

			seen[d] = struct{}{}
			union = append(union, d)
		}
	}

	for _, name := range names {
		lists, ok := c.Lookup(name)
		if !ok {
			continue
		}

		appendDishes(lists.Breakfast)
		appendDishes(lists.LunchDinner)
		appendDishes(lists.Snacks)
	}

	return union
}

var builtinCuisines = map[string]DishLists{
	"north indian": {
		Breakfast:   []string{"Aloo Paratha", "Paneer Paratha", "Chole Bhature", "Stuffed Kulcha", "Besan Chilla"},
		LunchDinner: []string{"Dal Makhani", "Paneer Butter Masala", "Rajma Chawal", "Chole Chawal", "Palak Paneer", "Jeera Rice with Dal Tadka", "Mix Veg with Roti", "Kadhi Pakora"},
		Snacks:      []string{"Samosa", "Paneer Tikka", "Bread Pakora", "Mathri"},
	},
	"south indian": {
		Breakfast:   []string{"Idli", "Masala Dosa", "Medu Vada", "Upma", "Pongal", "Uttapam"},
		LunchDinner: []string{"Sambar Rice", "Rasam Rice", "Curd Rice", "Lemon Rice", "Vegetable Kurma with Parotta", "Bisi Bele Bath", "Avial with Rice"},
		Snacks:      []string{"Murukku", "Banana Chips", "Masala Vada", "Bonda"},
	},
	"gujarati": {
		Breakfast:   []string{"Thepla", "Khaman Dhokla", "Handvo", "Fafda Jalebi"},
		LunchDinner: []string{"Gujarati Kadhi with Khichdi", "Undhiyu", "Sev Tameta Nu Shaak", "Dal Dhokli", "Bhinda Nu Shaak with Rotli"},
		Snacks:      []string{"Khandvi", "Dhokla", "Sev Khamani", "Chakri"},
	},
	"maharashtrian": {
		Breakfast:   []string{"Poha", "Sabudana Khichdi", "Misal Pav", "Thalipeeth"},
		LunchDinner: []string{"Varan Bhaat", "Pithla Bhakri", "Bharli Vangi", "Matki Usal with Chapati", "Zunka with Bhakri"},
		Snacks:      []string{"Vada Pav", "Kothimbir Vadi", "Batata Vada", "Chivda"},
	},
	"punjabi": {
		Breakfast:   []string{"Amritsari Kulcha", "Paneer Bhurji with Paratha", "Missi Roti with Curd", "Chana Masala with Bhatura"},
		LunchDinner: []string{"Sarson Ka Saag with Makki Roti", "Butter Chicken", "Tandoori Roti with Dal Fry", "Amritsari Chole", "Paneer Tikka Masala"},
		Snacks:      []string{"Paneer Pakora", "Aloo Tikki", "Lassi with Mathri"},
	},
	"bengali": {
		Breakfast:   []string{"Luchi with Aloo Dum", "Radhaballabhi", "Koraishutir Kachori"},
		LunchDinner: []string{"Shorshe Ilish with Rice", "Aloo Posto with Rice", "Cholar Dal with Luchi", "Macher Jhol with Rice", "Shukto with Rice"},
		Snacks:      []string{"Beguni", "Jhal Muri", "Telebhaja"},
	},
	"continental": {
		Breakfast:   []string{"Pancakes", "Scrambled Eggs on Toast", "Oatmeal Porridge", "French Toast"},
		LunchDinner: []string{"Grilled Vegetable Sandwich", "Pasta Primavera", "Baked Vegetables au Gratin", "Mushroom Risotto", "Minestrone Soup with Garlic Bread"},
		Snacks:      []string{"Garlic Bread", "Bruschetta", "Coleslaw Cups"},
	},
	"italian": {
		Breakfast:   []string{"Frittata", "Ricotta Toast", "Cornetto with Jam"},
		LunchDinner: []string{"Margherita Pizza", "Penne Arrabbiata", "Spaghetti Aglio e Olio", "Lasagna", "Gnocchi in Tomato Sauce"},
		Snacks:      []string{"Focaccia", "Caprese Skewers", "Arancini"},
	},
	"chinese": {
		Breakfast:   []string{"Vegetable Congee", "Scallion Pancakes"},
		LunchDinner: []string{"Vegetable Fried Rice", "Hakka Noodles", "Manchurian with Fried Rice", "Chilli Paneer with Noodles", "Sweet and Sour Vegetables"},
		Snacks:      []string{"Spring Rolls", "Momos", "Honey Chilli Potato"},
	},
}
