package common

import (
	"fmt"
	"time"
)

// RecipeSlotCount 每道食譜固定的食材欄位數（strIngredient1..20）
const RecipeSlotCount = 20

// Ingredient 食材辭彙表中的一個詞條（來自 list.php?i=list）
type Ingredient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// RecipeCandidate 搜尋結果中的食譜存根。
// 只含 id、名稱與縮圖，完整內容需再以 id 查詢
type RecipeCandidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

// IngredientSlot 食譜的一個食材欄位；名稱與份量各自可能為空
type IngredientSlot struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Valid 名稱與份量皆存在時才算有效配對
func (s IngredientSlot) Valid() bool {
	return s.Name != "" && s.Measure != ""
}

// Recipe 完整食譜（來自 lookup.php?i=）。
// Slots 依位置對應 strIngredient1..20 / strMeasure1..20
type Recipe struct {
	ID           string                          `json:"id"`
	Name         string                          `json:"name"`
	Thumbnail    string                          `json:"thumbnail"`
	Instructions string                          `json:"instructions"`
	SourceURL    string                          `json:"source_url"`
	Slots        [RecipeSlotCount]IngredientSlot `json:"slots"`
}

// ValidPairs 依欄位順序回傳名稱與份量皆存在的配對
func (r *Recipe) ValidPairs() []IngredientSlot {
	pairs := make([]IngredientSlot, 0, RecipeSlotCount)
	for _, slot := range r.Slots {
		if slot.Valid() {
			pairs = append(pairs, slot)
		}
	}
	return pairs
}

// 聊天發言者標籤
const (
	SpeakerUser = "Aspiring Chef"
	SpeakerChef = "Culinary Luminary"
)

// ChatLine 聊天記錄中的一行
type ChatLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// String 以「發言者: 內容」格式輸出
func (l ChatLine) String() string {
	return fmt.Sprintf("%s: %s", l.Speaker, l.Text)
}

// SessionState 會話展示狀態：單一最佳食譜欄位加上聊天記錄。
// 兩個搜尋流程都會整份覆寫 BestRecipe，不做合併
type SessionState struct {
	ID         string     `json:"id"`
	BestRecipe *Recipe    `json:"best_recipe,omitempty"`
	Transcript []ChatLine `json:"transcript"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewSessionState 建立空白會話狀態
func NewSessionState(id string) *SessionState {
	return &SessionState{
		ID:         id,
		Transcript: make([]ChatLine, 0, 2),
	}
}

// BeginChatTurn 重置整段對話並寫入使用者發言。
// 每次送出都會清空先前記錄，聊天記錄只保留本回合
func (s *SessionState) BeginChatTurn(message string) {
	s.Transcript = []ChatLine{{Speaker: SpeakerUser, Text: message}}
}

// AppendReply 追加主廚回覆
func (s *SessionState) AppendReply(reply string) {
	s.Transcript = append(s.Transcript, ChatLine{Speaker: SpeakerChef, Text: reply})
}

// RenderTranscript 將聊天記錄轉成顯示用字串
func (s *SessionState) RenderTranscript() []string {
	lines := make([]string, 0, len(s.Transcript))
	for _, line := range s.Transcript {
		lines = append(lines, line.String())
	}
	return lines
}
