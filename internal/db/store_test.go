package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated store backed by a file in a temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "recipes.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func pancakes() Recipe {
	return Recipe{
		Title:        "Pancakes",
		Category:     "Breakfast",
		Ingredients:  "flour, milk, eggs",
		Instructions: "Mix and fry.",
		ImageURI:     "",
	}
}

func titles(recipes []Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestInsertAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := Recipe{
		Title:        "Shakshuka",
		Ingredients:  "eggs\ntomatoes\npeppers",
		Instructions: "Simmer the sauce, crack in the eggs.",
		Category:     "Brunch",
		ImageURI:     "file:///photos/shakshuka.jpg",
	}
	id, err := store.InsertOrReplace(ctx, r)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	r.ID = id
	require.Equal(t, r, *got)
}

func TestInsertAssignsDistinctIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)
	b, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)

	require.NotEqual(t, a, b, "duplicate titles are allowed and get their own ids")

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestInsertOrReplaceExistingID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)

	replacement := Recipe{ID: id, Title: "Waffles", Category: "Brunch"}
	got, err := store.InsertOrReplace(ctx, replacement)
	require.NoError(t, err)
	require.Equal(t, id, got)

	stored, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, replacement, *stored)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, Recipe{ID: id}))

	next, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)
	require.Greater(t, next, id)
}

func TestGetByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetAllSortedByTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Tiramisu", "Apple Pie", "Lasagne", "Beef Stew", "apple crumble"} {
		_, err := store.InsertOrReplace(ctx, Recipe{Title: title, Category: "Other"})
		require.NoError(t, err)
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	// BINARY collation: upper case sorts before lower case.
	require.Equal(t, []string{"Apple Pie", "Beef Stew", "Lasagne", "Tiramisu", "apple crumble"}, titles(all))
}

func TestGetAllEmpty(t *testing.T) {
	store := openTestStore(t)

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUpdateReplacesEveryField(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)

	updated := Recipe{
		ID:           id,
		Title:        "Buttermilk Pancakes",
		Ingredients:  "flour, buttermilk, eggs, butter",
		Instructions: "Rest the batter for 10 minutes, then fry.",
		Category:     "Brunch",
		ImageURI:     "/tmp/pancakes.png",
	}
	require.NoError(t, store.Update(ctx, updated))

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, updated, *got)
}

func TestUpdateMissingID(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(context.Background(), Recipe{ID: 99, Title: "Ghost"})
	require.ErrorIs(t, err, ErrNotFound)

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all, "update must not create a row")
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	keep, err := store.InsertOrReplace(ctx, Recipe{Title: "Risotto", Category: "Dinner"})
	require.NoError(t, err)
	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)

	r := Recipe{ID: id}
	require.NoError(t, store.Delete(ctx, r))
	require.NoError(t, store.Delete(ctx, r))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, keep, all[0].ID)
}

func TestOperationSequenceKeepsOrderAndMembership(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	live := map[int64]string{}
	insert := func(title string) int64 {
		id, err := store.InsertOrReplace(ctx, Recipe{Title: title, Category: "Other"})
		require.NoError(t, err)
		live[id] = title
		return id
	}

	a := insert("Omelette")
	b := insert("Gazpacho")
	c := insert("Curry")
	insert("Brownies")

	require.NoError(t, store.Update(ctx, Recipe{ID: a, Title: "Zucchini Fritters", Category: "Lunch"}))
	live[a] = "Zucchini Fritters"
	require.NoError(t, store.Delete(ctx, Recipe{ID: b}))
	delete(live, b)
	require.NoError(t, store.Update(ctx, Recipe{ID: c, Title: "Aloo Gobi", Category: "Dinner"}))
	live[c] = "Aloo Gobi"
	insert("Muffins")

	all, err := store.GetAll(ctx)
	require.NoError(t, err)

	require.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Title < all[j].Title }))
	require.Len(t, all, len(live))
	for _, r := range all {
		title, ok := live[r.ID]
		require.True(t, ok, "unexpected id %d", r.ID)
		require.Equal(t, title, r.Title)
	}
}

func TestPancakesScenario(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Omelette", "Apple Pie", "Ramen"} {
		_, err := store.InsertOrReplace(ctx, Recipe{Title: title, Category: "Other"})
		require.NoError(t, err)
	}

	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Apple Pie", "Omelette", "Pancakes", "Ramen"}, titles(all))

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	want := pancakes()
	want.ID = id
	require.Equal(t, want, *got)

	require.NoError(t, store.Delete(ctx, *got))

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Apple Pie", "Omelette", "Ramen"}, titles(all))

	got, err = store.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRecipesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "recipes.sqlite")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Pancakes", got.Title)
}

func TestStorageFailureAfterClose(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "recipes.sqlite"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.InsertOrReplace(context.Background(), pancakes())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStorage), "got %v", err)
	require.False(t, errors.Is(err, ErrNotFound))

	_, err = store.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ErrStorage)
}

func TestOpenPathWithURIMetacharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "my recipes?v=1#draft.sqlite")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.InsertOrReplace(ctx, pancakes())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database file should keep its full name")

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
