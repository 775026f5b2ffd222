package editor

import "hkanno/internal/hkanno"

// Reduce returns the state after applying a. It never fails and never
// modifies s; out-of-range indices are clamped or ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Open:
		return open(s, a.Tabs)

	case SetActive:
		s.Active = clamp(a.Index, len(s.Tabs))
		return s

	case Close:
		if a.Index < 0 || a.Index >= len(s.Tabs) {
			return s
		}
		tabs := make([]FileTab, 0, len(s.Tabs)-1)
		tabs = append(tabs, s.Tabs[:a.Index]...)
		tabs = append(tabs, s.Tabs[a.Index+1:]...)
		active := s.Active
		if a.Index < active {
			active--
		}
		s.Tabs = tabs
		s.Active = clamp(active, len(tabs))
		return s

	case RevertActive:
		return updateActive(s, func(t *FileTab) {
			t.Text = t.Original.String()
			t.Dirty = false
		})

	case UpdateText:
		return updateActive(s, func(t *FileTab) {
			t.Text = a.Text
			t.Dirty = true
		})

	case UpdateCursor:
		return updateActive(s, func(t *FileTab) {
			c := a.Cursor
			t.Cursor = &c
		})

	case UpdateOutputPath:
		return updateActive(s, func(t *FileTab) {
			t.OutputPath = a.Path
		})

	case UpdateFormat:
		return updateActive(s, func(t *FileTab) {
			t.Format = a.Format
			t.OutputPath = hkanno.ChangeExtension(t.OutputPath, a.Format)
		})

	case TogglePreview:
		s.PreviewVisible = !s.PreviewVisible
		return s

	case MarkSaved:
		if a.Index < 0 || a.Index >= len(s.Tabs) {
			return s
		}
		return update(s, a.Index, func(t *FileTab) {
			t.Original = a.Original
			t.Dirty = false
		})

	case UpdateOriginal:
		if a.Index < 0 || a.Index >= len(s.Tabs) {
			return s
		}
		return update(s, a.Index, func(t *FileTab) {
			t.Original = a.Original
		})
	}
	return s
}

func open(s State, incoming []FileTab) State {
	seen := make(map[string]struct{}, len(s.Tabs)+len(incoming))
	for _, t := range s.Tabs {
		seen[t.ID] = struct{}{}
	}
	var fresh []FileTab
	for _, t := range incoming {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return s
	}
	tabs := make([]FileTab, 0, len(s.Tabs)+len(fresh))
	tabs = append(tabs, s.Tabs...)
	tabs = append(tabs, fresh...)
	s.Active = len(s.Tabs)
	s.Tabs = tabs
	return s
}

func updateActive(s State, fn func(*FileTab)) State {
	if len(s.Tabs) == 0 {
		return s
	}
	return update(s, clamp(s.Active, len(s.Tabs)), fn)
}

// update copies the tab slice so earlier states stay intact.
func update(s State, i int, fn func(*FileTab)) State {
	tabs := make([]FileTab, len(s.Tabs))
	copy(tabs, s.Tabs)
	fn(&tabs[i])
	s.Tabs = tabs
	s.Active = clamp(s.Active, len(tabs))
	return s
}
