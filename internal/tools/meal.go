package tools

import (
	"math/rand/v2"
	"strings"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// Rand is the random source used to pick meals. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the concurrency-safe top-level math/rand/v2 generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type mealTables struct {
	breakfasts []string
	lunches    []string
	dinners    []string
	snacks     []string
}

var vegetarianMeals = mealTables{
	breakfasts: []string{"Oatmeal with berries", "Greek yogurt with honey", "Avocado toast", "Smoothie bowl"},
	lunches:    []string{"Vegetable stir-fry with tofu", "Quinoa salad with chickpeas", "Veggie wrap", "Lentil soup"},
	dinners:    []string{"Grilled vegetable kebabs", "Paneer tikka with salad", "Vegetable curry with rice", "Stuffed peppers"},
	snacks:     []string{"Apple slices with peanut butter", "Hummus and carrot sticks", "Mixed nuts", "Fruit salad"},
}

var nonVegetarianMeals = mealTables{
	breakfasts: []string{"Egg omelette with spinach", "Turkey bacon and eggs", "Greek yogurt with nuts", "Chicken sausage wrap"},
	lunches:    []string{"Grilled chicken salad", "Tuna sandwich", "Turkey and avocado wrap", "Chicken noodle soup"},
	dinners:    []string{"Baked salmon with veggies", "Beef stir-fry", "Chicken curry with rice", "Shrimp pasta"},
	snacks:     []string{"Hard-boiled egg", "Turkey jerky", "Tuna salad on crackers", "Yogurt with granola"},
}

// MealPlanner builds meal plans from the static meal tables.
type MealPlanner struct {
	rng Rand
}

// NewMealPlanner returns a planner drawing from rng. A nil rng uses the
// package-level math/rand/v2 generator.
func NewMealPlanner(rng Rand) *MealPlanner {
	if rng == nil {
		rng = globalRand{}
	}
	return &MealPlanner{rng: rng}
}

// Generate returns one meal set per day. calorieTarget is accepted but does
// not influence the selection yet.
func (p *MealPlanner) Generate(calorieTarget float64, dietaryPrefs []string, days int) []domain.MealPlanDay {
	_ = calorieTarget

	tables := nonVegetarianMeals
	if IsVegetarian(dietaryPrefs) {
		tables = vegetarianMeals
	}

	plan := make([]domain.MealPlanDay, 0, max(days, 0))
	for d := 1; d <= days; d++ {
		plan = append(plan, domain.MealPlanDay{
			Day: d,
			Meals: domain.Meals{
				Breakfast: p.choice(tables.breakfasts),
				Lunch:     p.choice(tables.lunches),
				Dinner:    p.choice(tables.dinners),
				Snacks:    strings.Join(p.sample2(tables.snacks), ", "),
			},
		})
	}
	return plan
}

// IsVegetarian reports whether "vegetarian" is among prefs, ignoring case.
func IsVegetarian(prefs []string) bool {
	for _, pref := range prefs {
		if strings.EqualFold(pref, "vegetarian") {
			return true
		}
	}
	return false
}

func (p *MealPlanner) choice(items []string) string {
	return items[p.rng.IntN(len(items))]
}

// sample2 picks two distinct items.
func (p *MealPlanner) sample2(items []string) []string {
	i := p.rng.IntN(len(items))
	j := p.rng.IntN(len(items) - 1)
	if j >= i {
		j++
	}
	return []string{items[i], items[j]}
}
