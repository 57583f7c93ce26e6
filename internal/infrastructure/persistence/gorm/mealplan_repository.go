package gorm

import (
	"context"
	"time"

	"github.com/forkcast/v2/internal/domain/mealplan"
	"github.com/forkcast/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// MealPlanRepository implements the meal plan read model using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// FindDaysInRange returns planned days with date in [from, to), recipe
// slots preloaded. Empty slots come back nil, which is a normal state.
func (r *MealPlanRepository) FindDaysInRange(ctx context.Context, from, to time.Time) ([]*mealplan.Day, error) {
	var models []MealDayModel
	err := r.db.WithContext(ctx).
		Preload("Lunch").
		Preload("Protein").
		Preload("Carb").
		Preload("Vegetable").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	days := make([]*mealplan.Day, len(models))
	for i := range models {
		days[i] = ModelToMealDay(&models[i])
	}
	return days, nil
}
