// Package db provides SQLite persistence for recipes.
package db

// Recipe is a single saved recipe. ID is assigned by the store on insert
// and never changes afterwards.
type Recipe struct {
	ID           int64
	Title        string
	Ingredients  string
	Instructions string
	Category     string
	// ImageURI is stored as given and never interpreted here.
	ImageURI string
}
