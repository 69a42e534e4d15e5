package tray

// MenuItem пункт контекстного меню. Click вызывается в цикле событий.
type MenuItem struct {
	Label     string
	Tooltip   string
	Separator bool
	Disabled  bool
	Checked   *bool
	Click     func()
}

// Menu шаблон меню трея.
type Menu struct {
	Items []MenuItem
}

// Separator разделитель.
func Separator() MenuItem {
	return MenuItem{Separator: true}
}

// Labels подписи пунктов без разделителей.
func (m *Menu) Labels() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		if !it.Separator {
			out = append(out, it.Label)
		}
	}
	return out
}

// Find ищет пункт по подписи.
func (m *Menu) Find(label string) (MenuItem, bool) {
	if m == nil {
		return MenuItem{}, false
	}
	for _, it := range m.Items {
		if !it.Separator && it.Label == label {
			return it, true
		}
	}
	return MenuItem{}, false
}
