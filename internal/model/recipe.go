package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ingredient is one entry in a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Notes  string `json:"notes,omitempty"`
}

// Step is one ordered instruction in a recipe. Step numbers are 1-based
// and contiguous.
type Step struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	Time        string `json:"time,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// IngredientList stores ingredients as a JSON column.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		l = IngredientList{}
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StepList stores steps as a JSON column.
type StepList []Step

func (l StepList) Value() (driver.Value, error) {
	if l == nil {
		l = StepList{}
	}
	return json.Marshal(l)
}

func (l *StepList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// Recipe is a structured recipe, usually derived from a transcribed audio
// asset. When SourceAudioID is set the referenced asset had status completed
// at creation time.
type Recipe struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SourceAudioID *uuid.UUID     `gorm:"type:uuid" json:"source_audio_id,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Ingredients   IngredientList `gorm:"type:jsonb" json:"ingredients"`
	Steps         StepList       `gorm:"type:jsonb" json:"steps"`
	Tips          string         `gorm:"type:text" json:"tips"`
	Servings      string         `json:"servings"`
	CookingTime   string         `json:"cooking_time"`
	Difficulty    string         `json:"difficulty"` // 쉬움, 보통, 어려움
	Category      string         `json:"category"`   // 한식, 중식, 양식, 일식, 기타
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
