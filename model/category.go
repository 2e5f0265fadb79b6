package model

import (
	"github.com/gosimple/slug"
)

type Category struct {
	Label       string `json:"label"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func newCategory(label, description string) Category {
	return Category{Label: label, Slug: slug.Make(label), Description: description}
}

var Categories = []Category{
	newCategory("Beach", "This property is close to the beach!"),
	newCategory("Windmills", "This property has windmills!"),
	newCategory("Modern", "This property is modern!"),
	newCategory("Countryside", "This property is in the countryside!"),
	newCategory("Pools", "This property has a beautiful pool!"),
	newCategory("Islands", "This property is on an island!"),
	newCategory("Lake", "This property is near a lake!"),
	newCategory("Skiing", "This property has skiing activities!"),
	newCategory("Castles", "This property is an ancient castle!"),
	newCategory("Caves", "This property is in a spooky cave!"),
	newCategory("Camping", "This property offers camping activities!"),
	newCategory("Arctic", "This property is in arctic environment!"),
	newCategory("Desert", "This property is in the desert!"),
	newCategory("Barns", "This property is in a barn!"),
	newCategory("Lux", "This property is brand new and luxurious!"),
}

// CategoryByLabel matches either the label or its slug.
func CategoryByLabel(label string) (Category, bool) {
	for _, c := range Categories {
		if c.Label == label || c.Slug == slug.Make(label) {
			return c, true
		}
	}
	return Category{}, false
}
