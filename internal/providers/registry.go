// Package providers описывает веб-чаты, которые открываются во вкладках окна.
package providers

import (
	"errors"
	"fmt"
	"slices"

	"chatbar/internal/config"
)

// Provider веб-чат.
type Provider struct {
	ID   string `json:"id"`   // Уникальный идентификатор: "chatgpt"
	Name string `json:"name"` // Отображаемое имя
	URL  string `json:"url"`  // Адрес, открываемый во вкладке
	Icon string `json:"icon"` // Путь к иконке во frontend
}

// Registry все доступные чаты. Индекс в этом списке хранится в настройках.
var Registry = []Provider{
	{
		ID:   "chatgpt",
		Name: "ChatGPT",
		URL:  "https://chat.openai.com",
		Icon: "assets/chatgpt-icon.png",
	},
	{
		ID:   "claude",
		Name: "Claude",
		URL:  "https://claude.ai",
		Icon: "assets/claude-icon.png",
	},
	{
		ID:   "gemini",
		Name: "Gemini",
		URL:  "https://gemini.google.com",
		Icon: "assets/gemini-icon.png",
	},
	{
		ID:   "perplexity",
		Name: "Perplexity",
		URL:  "https://www.perplexity.ai",
		Icon: "assets/perplexity-icon.png",
	},
	{
		ID:   "deepseek",
		Name: "DeepSeek",
		URL:  "https://chat.deepseek.com",
		Icon: "assets/deepseek-icon.png",
	},
}

// ErrLastSelected нельзя снять выбор с последнего чата.
var ErrLastSelected = errors.New("at least one provider must stay selected")

// Get возвращает чат по ID.
func Get(id string) (Provider, bool) {
	for _, p := range Registry {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// ByIndex возвращает чат по индексу в Registry.
func ByIndex(i int) (Provider, bool) {
	if i < 0 || i >= len(Registry) {
		return Provider{}, false
	}
	return Registry[i], true
}

// Tab вкладка окна.
type Tab struct {
	Index    int      `json:"index"`    // Индекс в Registry
	Position int      `json:"position"` // Позиция среди вкладок
	Shortcut string   `json:"shortcut"` // Переключение внутри окна
	Provider Provider `json:"provider"`
}

// Tabs видимые вкладки и активная.
type Tabs struct {
	Tabs   []Tab `json:"tabs"`
	Active int   `json:"active"`
}

// Visible порядок вкладок: providerOrder, отфильтрованный по selectedProviders.
// Неизвестные индексы пропускаются; если ничего не осталось, показываются все.
func Visible(order, selected []int) []int {
	var out []int
	seen := make(map[int]bool)
	for _, i := range order {
		if seen[i] || !slices.Contains(selected, i) {
			continue
		}
		if _, ok := ByIndex(i); !ok {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	if len(out) == 0 {
		for i := range Registry {
			out = append(out, i)
		}
	}
	return out
}

// BuildTabs вкладки по настройкам. Активная: lastTab, если он ещё в диапазоне,
// иначе позиция defaultProvider, иначе первая.
func BuildTabs(s config.AppSettings) Tabs {
	visible := Visible(s.ProviderOrder, s.SelectedProviders)

	tabs := make([]Tab, 0, len(visible))
	for pos, idx := range visible {
		shortcut := ""
		if pos < 9 {
			shortcut = fmt.Sprintf("CommandOrControl+%d", pos+1)
		}
		tabs = append(tabs, Tab{
			Index:    idx,
			Position: pos,
			Shortcut: shortcut,
			Provider: Registry[idx],
		})
	}

	active := slices.Index(visible, s.DefaultProvider)
	if active < 0 {
		active = 0
	}
	if s.LastTab >= 0 && s.LastTab < len(visible) {
		active = s.LastTab
	}
	return Tabs{Tabs: tabs, Active: active}
}

// ToggleSelected включает/выключает чат в списке выбранных.
func ToggleSelected(selected []int, idx int) ([]int, error) {
	if _, ok := ByIndex(idx); !ok {
		return selected, fmt.Errorf("unknown provider index %d", idx)
	}
	if pos := slices.Index(selected, idx); pos >= 0 {
		if len(selected) == 1 {
			return selected, ErrLastSelected
		}
		return slices.Delete(slices.Clone(selected), pos, pos+1), nil
	}
	out := append(slices.Clone(selected), idx)
	slices.Sort(out)
	return out, nil
}
