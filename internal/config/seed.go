package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSystemPrompt is the persona message seeded as the first turn of every
// conversation unless the seed file overrides it.
const DefaultSystemPrompt = "あなたは飲食店のユーザーからの質問に対応するAIです。丁寧な言葉遣いで対応してください。"

// Seed holds bootstrap data loaded from the seed YAML file: the menu catalog to
// install at startup and the messages seeded into newly created conversations.
type Seed struct {
	SystemPrompt string         `yaml:"system_prompt"`
	Script       []SeedMessage  `yaml:"script"`
	Menu         []SeedMenuItem `yaml:"menu"`
}

// SeedMessage is one scripted example turn seeded after the system prompt.
type SeedMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// SeedMenuItem is one catalog record to upsert at startup.
type SeedMenuItem struct {
	Name        string            `yaml:"name"`
	Ingredients string            `yaml:"ingredients"`
	Allergens   string            `yaml:"allergens"`
	Halal       bool              `yaml:"halal"`
	Nutrition   map[string]string `yaml:"nutrition"`
}

// LoadSeed reads and validates the seed file. A missing file falls back to the
// built-in defaults so local development works without any bootstrap data.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSeed(), nil
		}
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	seed := &Seed{}
	if err := yaml.Unmarshal(raw, seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if strings.TrimSpace(seed.SystemPrompt) == "" {
		seed.SystemPrompt = DefaultSystemPrompt
	}

	seen := make(map[string]bool, len(seed.Menu))
	for i, item := range seed.Menu {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed file %s: menu entry %d has no name", path, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("seed file %s: duplicate menu name %q", path, name)
		}
		seen[name] = true
	}

	for i, msg := range seed.Script {
		switch msg.Role {
		case "user", "assistant":
		default:
			return nil, fmt.Errorf("seed file %s: script entry %d has unsupported role %q", path, i, msg.Role)
		}
	}

	return seed, nil
}

// DefaultSeed returns the built-in catalog used when no seed file is present.
func DefaultSeed() *Seed {
	return &Seed{
		SystemPrompt: DefaultSystemPrompt,
		Menu: []SeedMenuItem{
			{Name: "チキンカレー", Ingredients: "鶏肉,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
			{Name: "ビーフカレー", Ingredients: "牛肉,玉ねぎ,スパイス", Allergens: "牛肉アレルギー", Halal: false},
			{Name: "野菜カレー", Ingredients: "ジャガイモ,ニンジン,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
		},
	}
}
