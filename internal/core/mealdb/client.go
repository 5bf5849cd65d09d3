package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client TheMealDB API 客戶端，所有食譜查詢都經由它發出
type Client struct {
	config config.MealDBConfig
	client *resty.Client
}

// NewClient 創建 TheMealDB 客戶端
func NewClient(cfg config.MealDBConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// get 發送 GET 請求並回傳回應本體，非 200 狀態碼視為請求失敗
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)

	common.LogUpstreamCall("themealdb"+path, time.Since(start), err)

	if err != nil {
		return nil, common.NewError(
			common.ErrCodeMealDBRequest,
			fmt.Sprintf("API request failed: %v", err),
			http.StatusBadGateway,
			err,
		)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, common.NewError(
			common.ErrCodeMealDBRequest,
			fmt.Sprintf("API request failed with status code %d", resp.StatusCode()),
			http.StatusBadGateway,
			nil,
		)
	}

	return resp.Body(), nil
}

// decodeListPayload 解析回應中指定欄位的列表。
// 欄位存在但為 null 時回傳 ok=false（空結果）；
// 欄位缺漏或 JSON 格式錯誤視為解析失敗。
func decodeListPayload(body []byte, field string, out interface{}) (bool, error) {
	var payload map[string]json.RawMessage
	if err := common.ParseJSONBytes(body, &payload); err != nil {
		return false, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			err,
		)
	}

	raw, exists := payload[field]
	if !exists {
		return false, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			fmt.Errorf("missing %q field in response", field),
		)
	}

	if string(raw) == "null" {
		return false, nil
	}

	if err := common.ParseJSONBytes(raw, out); err != nil {
		return false, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			err,
		)
	}

	return true, nil
}

// FetchIngredientList 取得完整食材詞彙表（list.php?i=list）。
// 詞彙表是配對比對的依據，meals 為 null 視為解析失敗。
func (c *Client) FetchIngredientList(ctx context.Context) ([]common.Ingredient, error) {
	body, err := c.get(ctx, "/list.php", map[string]string{"i": "list"})
	if err != nil {
		return nil, err
	}

	var records []ingredientRecord
	ok, err := decodeListPayload(body, "meals", &records)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			fmt.Errorf("ingredient list is null"),
		)
	}

	ingredients := make([]common.Ingredient, 0, len(records))
	for _, rec := range records {
		ingredients = append(ingredients, common.Ingredient{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Type:        rec.Type,
		})
	}
	return ingredients, nil
}

// FetchCategoryList 取得所有食譜分類名稱（categories.php）
func (c *Client) FetchCategoryList(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/categories.php", nil)
	if err != nil {
		return nil, err
	}

	var records []categoryRecord
	ok, err := decodeListPayload(body, "categories", &records)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			fmt.Errorf("category list is null"),
		)
	}

	categories := make([]string, 0, len(records))
	for _, rec := range records {
		categories = append(categories, rec.Name)
	}
	return categories, nil
}

// FetchAreaList 取得所有菜系地區名稱（list.php?a=list）
func (c *Client) FetchAreaList(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/list.php", map[string]string{"a": "list"})
	if err != nil {
		return nil, err
	}

	var records []areaRecord
	ok, err := decodeListPayload(body, "meals", &records)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			fmt.Errorf("area list is null"),
		)
	}

	areas := make([]string, 0, len(records))
	for _, rec := range records {
		areas = append(areas, rec.Name)
	}
	return areas, nil
}

// SearchByIngredients 依食材名稱逐一查詢 filter.php?i=，
// 依輸入順序聯集所有結果。聯集不去重，同一食譜可能出現多次；
// meals 為 null 的查詢不貢獻結果並繼續下一筆，
// 任何請求或解析失敗則中止整個操作。
func (c *Client) SearchByIngredients(ctx context.Context, names []string) ([]common.RecipeCandidate, error) {
	candidates := make([]common.RecipeCandidate, 0)

	for _, name := range names {
		body, err := c.get(ctx, "/filter.php", map[string]string{"i": name})
		if err != nil {
			return nil, err
		}

		var records []candidateRecord
		ok, err := decodeListPayload(body, "meals", &records)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		for _, rec := range records {
			candidates = append(candidates, common.RecipeCandidate{
				ID:        rec.ID,
				Name:      rec.Name,
				Thumbnail: rec.Thumbnail,
			})
		}
	}

	return candidates, nil
}

// SearchByCategoryAndArea 依分類與地區查詢 filter.php?c=&a=。
// 兩個值原樣送出，包含字面的 "All"；meals 為 null 回傳空結果
func (c *Client) SearchByCategoryAndArea(ctx context.Context, category, area string) ([]common.RecipeCandidate, error) {
	body, err := c.get(ctx, "/filter.php", map[string]string{
		"c": category,
		"a": area,
	})
	if err != nil {
		return nil, err
	}

	var records []candidateRecord
	ok, err := decodeListPayload(body, "meals", &records)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []common.RecipeCandidate{}, nil
	}

	candidates := make([]common.RecipeCandidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, common.RecipeCandidate{
			ID:        rec.ID,
			Name:      rec.Name,
			Thumbnail: rec.Thumbnail,
		})
	}
	return candidates, nil
}

// GetRecipeDetails 取得單一食譜的完整內容（lookup.php?i=）。
// meals 缺漏、null 或空陣列都視為解析失敗，不會 panic
func (c *Client) GetRecipeDetails(ctx context.Context, id string) (*common.Recipe, error) {
	body, err := c.get(ctx, "/lookup.php", map[string]string{"i": id})
	if err != nil {
		return nil, err
	}

	var records []mealRecord
	ok, err := decodeListPayload(body, "meals", &records)
	if err != nil {
		return nil, err
	}
	if !ok || len(records) == 0 {
		return nil, common.NewError(
			common.ErrCodeMealDBPayload,
			"Error decoding JSON response",
			http.StatusBadGateway,
			fmt.Errorf("no meal found for id %s", id),
		)
	}

	return records[0].toRecipe(), nil
}
