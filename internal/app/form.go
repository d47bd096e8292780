package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
)

// Categories offered by the add and edit screens. The store accepts any text.
var Categories = []string{"Breakfast", "Brunch", "Lunch", "Dinner", "Desserts", "Other"}

// FormField identifies an input on the add/edit form.
type FormField int

const (
	FieldTitle FormField = iota
	FieldIngredients
	FieldInstructions
	FieldCategory
	FieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldTitle:        "Recipe Title",
	FieldIngredients:  "Ingredients",
	FieldInstructions: "Cooking Instructions",
	FieldCategory:     "Category",
	FieldImage:        "Image (path or URL)",
}

// recipeInput is the trimmed form content checked before saving.
type recipeInput struct {
	Title        string `validate:"required"`
	Ingredients  string `validate:"required"`
	Instructions string `validate:"required"`
	Category     string `validate:"required"`
	ImageURI     string
}

var validate = validator.New()

// recipeForm holds the add/edit form state. Text is edited at the end of
// each field only.
type recipeForm struct {
	id           int64
	title        string
	ingredients  string
	instructions string
	imageURI     string
	categories   []string
	category     int
	focus        FormField
}

func newForm() recipeForm {
	return recipeForm{categories: Categories}
}

// editForm pre-fills the form from r. A category outside the standard set
// is kept as an extra choice.
func editForm(r db.Recipe) recipeForm {
	f := recipeForm{
		id:           r.ID,
		title:        r.Title,
		ingredients:  r.Ingredients,
		instructions: r.Instructions,
		imageURI:     r.ImageURI,
		categories:   Categories,
	}
	idx := indexOf(Categories, r.Category)
	if idx < 0 && r.Category != "" {
		f.categories = append(append([]string(nil), Categories...), r.Category)
		idx = len(f.categories) - 1
	}
	f.category = max(0, idx)
	return f
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// recipe validates the form and returns the recipe to save.
func (f recipeForm) recipe() (db.Recipe, error) {
	in := recipeInput{
		Title:        strings.TrimSpace(f.title),
		Ingredients:  strings.TrimSpace(f.ingredients),
		Instructions: strings.TrimSpace(f.instructions),
		Category:     f.categoryName(),
		ImageURI:     strings.TrimSpace(f.imageURI),
	}
	if err := validate.Struct(in); err != nil {
		return db.Recipe{}, err
	}
	return db.Recipe{
		ID:           f.id,
		Title:        in.Title,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Category:     in.Category,
		ImageURI:     in.ImageURI,
	}, nil
}

func (f recipeForm) categoryName() string {
	if f.category < 0 || f.category >= len(f.categories) {
		return ""
	}
	return f.categories[f.category]
}

func (f recipeForm) multiline() bool {
	return f.focus == FieldIngredients || f.focus == FieldInstructions
}

// value returns a pointer to the text of the focused field, or nil for
// the category picker.
func (f *recipeForm) value() *string {
	return f.field(f.focus)
}

func (f *recipeForm) field(field FormField) *string {
	switch field {
	case FieldTitle:
		return &f.title
	case FieldIngredients:
		return &f.ingredients
	case FieldInstructions:
		return &f.instructions
	case FieldImage:
		return &f.imageURI
	}
	return nil
}

// handleKey applies an editing or focus key to the form.
func (f *recipeForm) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case KeyTab, KeyDown:
		f.focus = (f.focus + 1) % fieldCount
		return
	case KeyShiftTab, KeyUp:
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return
	case KeyEnter:
		if v := f.value(); v != nil && f.multiline() {
			*v += "\n"
		} else {
			f.focus = (f.focus + 1) % fieldCount
		}
		return
	}

	if f.focus == FieldCategory {
		n := len(f.categories)
		switch msg.String() {
		case KeyLeft:
			f.category = (f.category + n - 1) % n
		case KeyRight, " ":
			f.category = (f.category + 1) % n
		}
		return
	}

	v := f.value()
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(*v); len(r) > 0 {
			*v = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		*v += " "
	case tea.KeyRunes:
		*v += string(msg.Runes)
	}
}
