package mealdb

import (
	"fmt"

	"lumine-kitchen/internal/pkg/common"
)

// ingredientRecord list.php?i=list 回應中的單筆食材
type ingredientRecord struct {
	ID          string `json:"idIngredient"`
	Name        string `json:"strIngredient"`
	Description string `json:"strDescription"`
	Type        string `json:"strType"`
}

// categoryRecord categories.php 回應中的單筆分類
type categoryRecord struct {
	Name string `json:"strCategory"`
}

// areaRecord list.php?a=list 回應中的單筆地區
type areaRecord struct {
	Name string `json:"strArea"`
}

// candidateRecord filter.php 回應中的食譜簡目
type candidateRecord struct {
	ID        string `json:"idMeal"`
	Name      string `json:"strMeal"`
	Thumbnail string `json:"strMealThumb"`
}

// mealRecord lookup.php 回應中的完整食譜。
// 欄位名稱是位置式的（strIngredient1..20、strMeasure1..20），
// 用 map 承接，null 值會落為空字串。
type mealRecord map[string]string

// toRecipe 將原始欄位轉成領域食譜，缺漏欄位一律視為空字串
func (m mealRecord) toRecipe() *common.Recipe {
	recipe := &common.Recipe{
		ID:           m["idMeal"],
		Name:         m["strMeal"],
		Thumbnail:    m["strMealThumb"],
		Instructions: m["strInstructions"],
		SourceURL:    m["strSource"],
	}
	for i := 0; i < common.RecipeSlotCount; i++ {
		recipe.Slots[i] = common.IngredientSlot{
			Name:    m[fmt.Sprintf("strIngredient%d", i+1)],
			Measure: m[fmt.Sprintf("strMeasure%d", i+1)],
		}
	}
	return recipe
}
