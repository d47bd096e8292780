package app

import (
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/writer"
)

// SplashDoneMsg ends the splash screen.
type SplashDoneMsg struct{}

// WatchStartedMsg carries the live listing subscription once it is open.
type WatchStartedMsg struct {
	Sub *db.Subscription
}

// RecipesMsg carries a fresh ordered listing from the live view.
type RecipesMsg struct {
	Recipes []db.Recipe
}

// WatchClosedMsg is sent when the live view ends.
type WatchClosedMsg struct{}

// RecipeLoadedMsg carries the result of a lookup by id. Recipe is nil when
// the id does not exist.
type RecipeLoadedMsg struct {
	ID     int64
	Recipe *db.Recipe
	Err    error
}

// WriteResultMsg reports a finished background write.
type WriteResultMsg struct {
	Result writer.Result
}

// ClearToastMsg clears the toast it was scheduled for.
type ClearToastMsg struct {
	Seq int
}
