package ui

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"payboard/clients"
	"payboard/labels"
)

// PickMerchant runs an interactive merchant picker with fuzzy search and
// returns the chosen merchant. promptui's EOF/interrupt errors pass through
// so callers can treat them as a normal abort.
func PickMerchant(merchants []clients.Merchant, statusLabels map[string]string) (*clients.Merchant, error) {
	if len(merchants) == 0 {
		return nil, fmt.Errorf("no merchants to pick from")
	}

	items := make([]string, len(merchants))
	for i, m := range merchants {
		name := m.MchtName
		if len([]rune(name)) > 40 {
			name = TruncateText(name, 40)
		}
		items[i] = fmt.Sprintf("%s - %s (%s)", m.MchtCode, name, labels.Resolve(statusLabels, m.Status))
	}

	prompt := promptui.Select{
		Label:             "Select a merchant",
		Items:             items,
		Size:              minInt(12, len(items)),
		StartInSearchMode: true,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   `{{ "✔" | cyan }} {{ . | cyan }}`,
			Inactive: `  {{ . }}`,
			Selected: `{{ "✔" | green }} {{ . | green }}`,
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return &merchants[index], nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
